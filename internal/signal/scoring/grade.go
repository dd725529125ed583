package scoring

// Grade maps a score against its maximum onto the shared four-bucket letter
// grade: A >= 80%, B >= 60%, C >= 40%, D below. Every scorer and the
// composite aggregator use this single function.
func Grade(score, maxScore float64) string {
	if maxScore <= 0 {
		return "D"
	}
	ratio := score / maxScore
	switch {
	case ratio >= 0.80:
		return "A"
	case ratio >= 0.60:
		return "B"
	case ratio >= 0.40:
		return "C"
	default:
		return "D"
	}
}
