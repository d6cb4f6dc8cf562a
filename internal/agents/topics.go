package agents

import "strings"

// topic buckets the query into one of the scenario families the
// scripted agents know how to argue about.
type topic int

const (
	topicGeneric topic = iota
	topicEU
	topicHemp
	topicContractor
	topicExpansion
)

func classifyTopic(query string) topic {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "eu") || strings.Contains(q, "gdpr") || strings.Contains(q, "europe"):
		return topicEU
	case strings.Contains(q, "hemp") || strings.Contains(q, "cannabis") || strings.Contains(q, "cbd"):
		return topicHemp
	case strings.Contains(q, "california") && (strings.Contains(q, "contractor") || strings.Contains(q, "hire")):
		return topicContractor
	case strings.Contains(q, "germany") || strings.Contains(q, "office"):
		return topicExpansion
	default:
		return topicGeneric
	}
}
