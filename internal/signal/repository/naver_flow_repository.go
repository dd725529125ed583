package repository

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/pkg/logger"
)

// NaverFlowRepository fetches daily investor net-buy flow from the Naver
// Finance foreigner/institution page.
type NaverFlowRepository interface {
	FetchInvestorFlow(ctx context.Context, stockCode string, from, to time.Time) ([]entity.InvestorFlow, error)
}

type naverFlowRepository struct {
	cfg     *config.Config
	logger  *logger.Logger
	client  *http.Client
	limiter *rate.Limiter
}

// NewNaverFlowRepository creates a new instance of naverFlowRepository.
func NewNaverFlowRepository(cfg *config.Config, log *logger.Logger) NaverFlowRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Naver.MaxRequestPerMinute)
	return &naverFlowRepository{
		cfg:     cfg,
		logger:  log,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

var naverDateRe = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)

// FetchInvestorFlow walks the paginated daily table newest-first and stops
// once a row falls before the requested range or the pages run out.
func (r *naverFlowRepository) FetchInvestorFlow(ctx context.Context, stockCode string, from, to time.Time) ([]entity.InvestorFlow, error) {
	var flows []entity.InvestorFlow
	emptyPages := 0

	for page := 1; page <= r.cfg.Naver.MaxPages; page++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return flows, err
		}

		pageFlows, lastDate, hasMore, err := r.fetchPage(ctx, stockCode, page, from, to)
		if err != nil {
			return flows, err
		}
		flows = append(flows, pageFlows...)

		if !lastDate.IsZero() && lastDate.Before(from) {
			break
		}
		if !hasMore {
			break
		}
		if lastDate.IsZero() {
			emptyPages++
			if emptyPages >= 3 {
				break
			}
		} else {
			emptyPages = 0
		}
	}

	r.logger.Debug("Fetched investor flow",
		logger.StringField("stock_code", stockCode),
		logger.IntField("count", len(flows)))
	return flows, nil
}

func (r *naverFlowRepository) fetchPage(ctx context.Context, stockCode string, page int, from, to time.Time) ([]entity.InvestorFlow, time.Time, bool, error) {
	url := fmt.Sprintf("%s/item/frgn.naver?code=%s&page=%d", r.cfg.Naver.BaseURL, stockCode, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://finance.naver.com/")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to fetch investor flow page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, false, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to parse investor flow page: %w", err)
	}

	flows, lastDate := parseInvestorTable(doc, stockCode, from, to)
	hasMore := doc.Find(".pgRR").Length() > 0
	return flows, lastDate, hasMore, nil
}

// parseInvestorTable reads the second type2 table. Columns: date, close,
// diff, change pct, volume, institution net, foreign net. The individual
// leg is derived so the three always sum to zero.
func parseInvestorTable(doc *goquery.Document, stockCode string, from, to time.Time) ([]entity.InvestorFlow, time.Time) {
	var flows []entity.InvestorFlow
	var lastDate time.Time

	tables := doc.Find("table.type2")
	if tables.Length() < 2 {
		return flows, lastDate
	}

	tables.Eq(1).Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 7 {
			return
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		if !naverDateRe.MatchString(dateText) {
			return
		}
		date, err := time.Parse("2006.01.02", dateText)
		if err != nil {
			return
		}
		lastDate = date

		if date.Before(from) || date.After(to) {
			return
		}

		institutionNet := parseKoreanNumber(cells.Eq(5).Text())
		foreignNet := parseKoreanNumber(cells.Eq(6).Text())

		flows = append(flows, entity.InvestorFlow{
			StockCode:      stockCode,
			Date:           date,
			ForeignNet:     foreignNet,
			InstitutionNet: institutionNet,
			IndividualNet:  -(foreignNet + institutionNet),
		})
	})

	return flows, lastDate
}

func parseKoreanNumber(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" || s == "-" {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
