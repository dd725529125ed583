package service

import (
	"context"
	"fmt"
	"time"

	"golang-kstock-signals/internal/entity"
)

func inRange(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

type fakeStocksRepo struct {
	stocks []entity.Stock
	err    error
}

func (f *fakeStocksRepo) GetStocks(ctx context.Context) ([]entity.Stock, error) {
	return f.stocks, f.err
}

func (f *fakeStocksRepo) GetByCode(ctx context.Context, code string) (*entity.Stock, error) {
	for i := range f.stocks {
		if f.stocks[i].Code == code {
			return &f.stocks[i], nil
		}
	}
	return nil, fmt.Errorf("stock %s not found", code)
}

type fakePriceRepo struct {
	bars     map[string][]entity.StockPrice
	closes   map[string]float64
	rangeErr map[string]error
	closeErr map[string]error
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{
		bars:     map[string][]entity.StockPrice{},
		closes:   map[string]float64{},
		rangeErr: map[string]error{},
		closeErr: map[string]error{},
	}
}

func (f *fakePriceRepo) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.StockPrice, error) {
	if err := f.rangeErr[stockCode]; err != nil {
		return nil, err
	}
	var out []entity.StockPrice
	for _, bar := range f.bars[stockCode] {
		if inRange(bar.Date, start, end) {
			out = append(out, bar)
		}
	}
	return out, nil
}

func (f *fakePriceRepo) GetCodesWithBarOn(ctx context.Context, date time.Time) ([]string, error) {
	var codes []string
	for code, bars := range f.bars {
		for _, bar := range bars {
			if bar.Date.Equal(date) {
				codes = append(codes, code)
				break
			}
		}
	}
	return codes, nil
}

func (f *fakePriceRepo) GetLatestClose(ctx context.Context, stockCode string, onOrBefore time.Time) (float64, error) {
	if err := f.closeErr[stockCode]; err != nil {
		return 0, err
	}
	if close, ok := f.closes[stockCode]; ok {
		return close, nil
	}
	return 0, fmt.Errorf("no bar for %s", stockCode)
}

func (f *fakePriceRepo) Upsert(ctx context.Context, bars []entity.StockPrice) error {
	for _, bar := range bars {
		f.bars[bar.StockCode] = append(f.bars[bar.StockCode], bar)
	}
	return nil
}

type fakeEventRepo struct {
	events map[string][]entity.StockEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string][]entity.StockEvent{}}
}

func (f *fakeEventRepo) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.StockEvent, error) {
	var out []entity.StockEvent
	for _, ev := range f.events[stockCode] {
		if inRange(ev.Date, start, end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByDate(ctx context.Context, stockCode string, date time.Time) ([]entity.StockEvent, error) {
	return f.GetRange(ctx, stockCode, date, date)
}

func (f *fakeEventRepo) Upsert(ctx context.Context, events []entity.StockEvent) error {
	for _, ev := range events {
		f.events[ev.StockCode] = append(f.events[ev.StockCode], ev)
	}
	return nil
}

type fakeFlowRepo struct {
	flows map[string][]entity.InvestorFlow
}

func newFakeFlowRepo() *fakeFlowRepo {
	return &fakeFlowRepo{flows: map[string][]entity.InvestorFlow{}}
}

func (f *fakeFlowRepo) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.InvestorFlow, error) {
	var out []entity.InvestorFlow
	for _, flow := range f.flows[stockCode] {
		if inRange(flow.Date, start, end) {
			out = append(out, flow)
		}
	}
	return out, nil
}

func (f *fakeFlowRepo) Upsert(ctx context.Context, flows []entity.InvestorFlow) error {
	for _, flow := range flows {
		f.flows[flow.StockCode] = append(f.flows[flow.StockCode], flow)
	}
	return nil
}

type fakeSocialRepo struct {
	stats map[string][]entity.SocialMentionStat
}

func newFakeSocialRepo() *fakeSocialRepo {
	return &fakeSocialRepo{stats: map[string][]entity.SocialMentionStat{}}
}

func (f *fakeSocialRepo) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.SocialMentionStat, error) {
	var out []entity.SocialMentionStat
	for _, stat := range f.stats[stockCode] {
		if inRange(stat.Date, start, end) {
			out = append(out, stat)
		}
	}
	return out, nil
}

func (f *fakeSocialRepo) Upsert(ctx context.Context, stats []entity.SocialMentionStat) error {
	for _, stat := range stats {
		f.stats[stat.StockCode] = append(f.stats[stat.StockCode], stat)
	}
	return nil
}

type fakeRatioRepo struct {
	ratios []entity.FinancialRatio
	err    error
}

func (f *fakeRatioRepo) Get(ctx context.Context, stockCode, bsnsYear, reprtCode string) (*entity.FinancialRatio, error) {
	for i := range f.ratios {
		r := &f.ratios[i]
		if r.StockCode == stockCode && r.BsnsYear == bsnsYear && r.ReprtCode == reprtCode {
			return r, nil
		}
	}
	return nil, fmt.Errorf("ratio not found")
}

func (f *fakeRatioRepo) GetLatestPerStock(ctx context.Context) ([]entity.FinancialRatio, error) {
	return f.ratios, f.err
}

func (f *fakeRatioRepo) Upsert(ctx context.Context, ratio *entity.FinancialRatio) error {
	f.ratios = append(f.ratios, *ratio)
	return nil
}
