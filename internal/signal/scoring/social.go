package scoring

import (
	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// ScoreSocial scores social buzz over the trailing window. Raw counts go
// through a saturating curve so no single source can dominate; telegram
// sentiment contributes its polarity linearly.
func ScoreSocial(cfg Config, stats []entity.SocialMentionStat) dto.DimensionScore {
	bands := cfg.Social
	details := map[string]interface{}{}

	if len(stats) == 0 {
		details["data_unavailable"] = true
		return dto.DimensionScore{Score: 0, MaxScore: bands.MaxScore, Grade: Grade(0, bands.MaxScore), Details: details}
	}

	var youtube, expert, telegram int
	var sentimentSum float64
	var sentimentDays int
	for _, s := range stats {
		youtube += s.YoutubeCount
		expert += s.ExpertCount
		telegram += s.TelegramIdeaCount
		if s.TelegramIdeaCount > 0 {
			sentimentSum += s.TelegramSentiment
			sentimentDays++
		}
	}

	youtubePts := bands.YoutubePoints * saturate(float64(youtube), bands.YoutubeHalfway)
	expertPts := bands.ExpertPoints * saturate(float64(expert), bands.ExpertHalfway)
	telegramPts := bands.TelegramPoints * saturate(float64(telegram), bands.TelegramHalfway)

	var sentimentPts float64
	if sentimentDays > 0 {
		avg := sentimentSum / float64(sentimentDays)
		if avg < -1 {
			avg = -1
		}
		if avg > 1 {
			avg = 1
		}
		sentimentPts = (avg + 1) / 2 * bands.SentimentPoints
		details["telegram_sentiment_avg"] = round2(avg)
	}

	score := youtubePts + expertPts + telegramPts + sentimentPts
	if score > bands.MaxScore {
		score = bands.MaxScore
	}

	details["youtube_count"] = youtube
	details["youtube_points"] = round2(youtubePts)
	details["expert_count"] = expert
	details["expert_points"] = round2(expertPts)
	details["telegram_idea_count"] = telegram
	details["telegram_points"] = round2(telegramPts)
	details["sentiment_points"] = round2(sentimentPts)

	return dto.DimensionScore{
		Score:    score,
		MaxScore: bands.MaxScore,
		Grade:    Grade(score, bands.MaxScore),
		Details:  details,
	}
}

// saturate is x/(x+halfway): diminishing returns, 0.5 at the halfway count,
// approaching 1 asymptotically.
func saturate(x, halfway float64) float64 {
	if x <= 0 || halfway <= 0 {
		return 0
	}
	return x / (x + halfway)
}
