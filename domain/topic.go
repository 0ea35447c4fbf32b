package domain

// Topic is a broadcast address a viewer connection can subscribe to.
// Three granularities exist: a single match, every match of a sport,
// and the singleton set of all currently live matches.
type Topic string

// LiveMatchesTopic carries updates about the set of live matches.
const LiveMatchesTopic Topic = "live-matches"

func MatchTopic(matchID string) Topic {
	return Topic("match:" + matchID)
}

func SportTopic(sportKey string) Topic {
	return Topic("sport:" + sportKey)
}
