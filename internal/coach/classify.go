package coach

import "strings"

// Topic is one routable coaching domain.
type Topic string

const (
	TopicPerformance Topic = "performance"
	TopicTactics     Topic = "tactics"
	TopicTraining    Topic = "training"
	TopicMental      Topic = "mental"
)

// topicOrder fixes agent invocation order. Training must run after performance
// so its thresholds see the averages computed in the same query.
var topicOrder = []Topic{TopicPerformance, TopicTactics, TopicTraining, TopicMental}

var keywords = map[Topic][]string{
	TopicPerformance: {"speed", "xg", "form", "fitness", "stats", "performance", "passing", "accel", "shot"},
	TopicTactics:     {"tactic", "formation", "press", "counter", "defend", "attack", "build-up"},
	TopicTraining:    {"drill", "training", "practice", "plan", "session", "warmup", "cooldown", "recovery"},
	TopicMental:      {"mindset", "confidence", "focus", "visualization", "breath", "anxiety", "pep", "motivation"},
}

// Classify maps free text to the set of matched topics, in fixed topic order.
// A topic matches when any of its keywords is a substring of the lowercased
// input. No match defaults to {performance}; classification is total and never
// returns an empty set.
func Classify(question string) []Topic {
	s := strings.ToLower(question)
	var hits []Topic
	for _, topic := range topicOrder {
		for _, kw := range keywords[topic] {
			if strings.Contains(s, kw) {
				hits = append(hits, topic)
				break
			}
		}
	}
	if len(hits) == 0 {
		return []Topic{TopicPerformance}
	}
	return hits
}

func matched(topics []Topic, t Topic) bool {
	for _, x := range topics {
		if x == t {
			return true
		}
	}
	return false
}
