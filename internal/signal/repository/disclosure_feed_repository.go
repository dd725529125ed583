package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// DisclosureFeedRepository pulls dated news and disclosure items for a
// stock from an RSS feed and normalizes them into stock events.
type DisclosureFeedRepository interface {
	FetchEvents(ctx context.Context, stockCode, stockName string) ([]entity.StockEvent, error)
}

type disclosureFeedRepository struct {
	cfg           *config.Config
	logger        *logger.Logger
	client        *http.Client
	parser        *gofeed.Parser
	inmemoryCache *cache.Cache
}

// NewDisclosureFeedRepository creates a new instance of disclosureFeedRepository.
func NewDisclosureFeedRepository(cfg *config.Config, log *logger.Logger) DisclosureFeedRepository {
	return &disclosureFeedRepository{
		cfg:           cfg,
		logger:        log,
		client:        &http.Client{Timeout: 30 * time.Second},
		parser:        gofeed.NewParser(),
		inmemoryCache: cache.New(30*time.Minute, 10*time.Minute),
	}
}

// Korean title keywords that mark an item as a formal disclosure rather
// than press coverage.
var disclosureMarkers = []string{"공시", "공고", "보고서", "주요사항보고", "정정"}

var importanceKeywords = map[string][]string{
	entity.ImportanceHigh:   {"유상증자", "무상증자", "합병", "인수", "수주", "공급계약", "실적", "영업이익", "상한가", "임상", "승인", "특허"},
	entity.ImportanceMedium: {"신제품", "출시", "투자", "협력", "MOU", "자사주", "배당"},
}

// FetchEvents loads the feed for one stock and returns the fresh items as
// events. Items already seen in this process are filtered before any body
// fetch so repeated sync runs stay cheap.
func (r *disclosureFeedRepository) FetchEvents(ctx context.Context, stockCode, stockName string) ([]entity.StockEvent, error) {
	query := stockName
	if query == "" {
		query = stockCode
	}
	feedURL := fmt.Sprintf(r.cfg.Disclosure.FeedURL, url.QueryEscape(query))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	maxItems := r.cfg.Disclosure.MaxItems
	if maxItems <= 0 {
		maxItems = 30
	}
	cutoff := utils.TimeNowKST().AddDate(0, 0, -r.cfg.Disclosure.MaxItemAgeInDays)

	var events []entity.StockEvent
	for _, item := range feed.Items {
		if len(events) >= maxItems {
			break
		}
		if item.PublishedParsed == nil {
			continue
		}
		if r.cfg.Disclosure.MaxItemAgeInDays > 0 && item.PublishedParsed.Before(cutoff) {
			continue
		}

		hash := utils.HashMD5(item.Link + "|" + item.Published)
		if _, seen := r.inmemoryCache.Get(hash); seen {
			continue
		}
		r.inmemoryCache.Set(hash, struct{}{}, cache.DefaultExpiration)

		event := entity.StockEvent{
			StockCode:      stockCode,
			Date:           utils.TruncateToDate(item.PublishedParsed.In(utils.LocationKST)),
			Type:           classifyEventType(item.Title),
			Title:          item.Title,
			Link:           item.Link,
			HashIdentifier: hash,
			Importance:     classifyImportance(item.Title),
			Keywords:       pq.StringArray(matchedKeywords(item.Title)),
		}
		if source, err := url.Parse(item.Link); err == nil {
			event.Source = source.Hostname()
		}

		if r.cfg.Disclosure.FetchBody {
			body, err := r.extractArticleText(ctx, item.Link)
			if err != nil {
				r.logger.Warn("Failed to extract article body",
					logger.StringField("link", item.Link),
					logger.ErrorField(err))
			} else {
				event.RawContent = body
			}
		}

		events = append(events, event)
	}

	r.logger.Debug("Fetched disclosure feed",
		logger.StringField("stock_code", stockCode),
		logger.IntField("feed_items", len(feed.Items)),
		logger.IntField("events", len(events)))
	return events, nil
}

func (r *disclosureFeedRepository) extractArticleText(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	stripped, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to strip article markup: %w", err)
	}

	text := strings.TrimSpace(stripped.Text())
	replacer := strings.NewReplacer("\n", " ", "\t", " ", "\r", " ", "\f", " ")
	return replacer.Replace(text), nil
}

func classifyEventType(title string) string {
	for _, marker := range disclosureMarkers {
		if strings.Contains(title, marker) {
			return entity.EventTypeDisclosure
		}
	}
	return entity.EventTypeNews
}

func classifyImportance(title string) string {
	for _, kw := range importanceKeywords[entity.ImportanceHigh] {
		if strings.Contains(title, kw) {
			return entity.ImportanceHigh
		}
	}
	for _, kw := range importanceKeywords[entity.ImportanceMedium] {
		if strings.Contains(title, kw) {
			return entity.ImportanceMedium
		}
	}
	return entity.ImportanceLow
}

func matchedKeywords(title string) []string {
	var keywords []string
	for _, group := range importanceKeywords {
		for _, kw := range group {
			if strings.Contains(title, kw) {
				keywords = append(keywords, kw)
			}
		}
	}
	return keywords
}
