package catalyst

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/pkg/utils"
)

// In-memory repository fakes backing the detector/tracker tests.

type fakePriceRepo struct {
	bars map[string][]entity.StockPrice
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{bars: map[string][]entity.StockPrice{}}
}

func (f *fakePriceRepo) add(code string, date time.Time, close float64, volume int64) {
	f.bars[code] = append(f.bars[code], entity.StockPrice{
		StockCode: code,
		Date:      date,
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    volume,
	})
	sort.Slice(f.bars[code], func(i, j int) bool {
		return f.bars[code][i].Date.Before(f.bars[code][j].Date)
	})
}

func (f *fakePriceRepo) GetRange(_ context.Context, code string, start, end time.Time) ([]entity.StockPrice, error) {
	var out []entity.StockPrice
	for _, b := range f.bars[code] {
		if !b.Date.Before(start) && !b.Date.After(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakePriceRepo) GetCodesWithBarOn(_ context.Context, date time.Time) ([]string, error) {
	var codes []string
	for code, bars := range f.bars {
		for _, b := range bars {
			if utils.SameDate(b.Date, date) {
				codes = append(codes, code)
				break
			}
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (f *fakePriceRepo) GetLatestClose(_ context.Context, code string, onOrBefore time.Time) (float64, error) {
	var close float64
	for _, b := range f.bars[code] {
		if !b.Date.After(onOrBefore) {
			close = b.Close
		}
	}
	return close, nil
}

func (f *fakePriceRepo) Upsert(_ context.Context, bars []entity.StockPrice) error {
	for _, b := range bars {
		f.add(b.StockCode, b.Date, b.Close, b.Volume)
	}
	return nil
}

type fakeEventRepo struct {
	events map[string][]entity.StockEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string][]entity.StockEvent{}}
}

func (f *fakeEventRepo) add(code string, date time.Time, evType, importance, title string) {
	f.events[code] = append(f.events[code], entity.StockEvent{
		StockCode:  code,
		Date:       date,
		Type:       evType,
		Importance: importance,
		Title:      title,
	})
}

func (f *fakeEventRepo) GetRange(_ context.Context, code string, start, end time.Time) ([]entity.StockEvent, error) {
	var out []entity.StockEvent
	for _, ev := range f.events[code] {
		if !ev.Date.Before(start) && !ev.Date.After(end) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeEventRepo) GetByDate(ctx context.Context, code string, date time.Time) ([]entity.StockEvent, error) {
	return f.GetRange(ctx, code, date, date)
}

func (f *fakeEventRepo) Upsert(_ context.Context, events []entity.StockEvent) error {
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

func (f *fakeFlowRepo) add(code string, date time.Time, foreign, institution int64) {
	f.flows[code] = append(f.flows[code], entity.InvestorFlow{
		StockCode:      code,
		Date:           date,
		ForeignNet:     foreign,
		InstitutionNet: institution,
	})
	sort.Slice(f.flows[code], func(i, j int) bool {
		return f.flows[code][i].Date.Before(f.flows[code][j].Date)
	})
}

func (f *fakeFlowRepo) GetRange(_ context.Context, code string, start, end time.Time) ([]entity.InvestorFlow, error) {
	var out []entity.InvestorFlow
	for _, fl := range f.flows[code] {
		if !fl.Date.Before(start) && !fl.Date.After(end) {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *fakeFlowRepo) Upsert(_ context.Context, flows []entity.InvestorFlow) error {
	for _, fl := range flows {
		f.add(fl.StockCode, fl.Date, fl.ForeignNet, fl.InstitutionNet)
	}
	return nil
}

type fakeCatalystRepo struct {
	events []*entity.CatalystEvent
	nextID uint
}

func newFakeCatalystRepo() *fakeCatalystRepo {
	return &fakeCatalystRepo{nextID: 1}
}

func (f *fakeCatalystRepo) Create(_ context.Context, event *entity.CatalystEvent) error {
	for _, existing := range f.events {
		if existing.StockCode == event.StockCode && utils.SameDate(existing.EventDate, event.EventDate) {
			return fmt.Errorf("duplicate catalyst event for %s", event.StockCode)
		}
	}
	event.ID = f.nextID
	f.nextID++
	copied := *event
	f.events = append(f.events, &copied)
	return nil
}

func (f *fakeCatalystRepo) GetByStockAndDate(_ context.Context, code string, date time.Time) (*entity.CatalystEvent, error) {
	for _, ev := range f.events {
		if ev.StockCode == code && utils.SameDate(ev.EventDate, date) {
			copied := *ev
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalystRepo) ListNonExpired(_ context.Context) ([]entity.CatalystEvent, error) {
	var out []entity.CatalystEvent
	for _, ev := range f.events {
		if ev.Status != entity.CatalystStatusExpired {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockCode < out[j].StockCode })
	return out, nil
}

func (f *fakeCatalystRepo) List(_ context.Context, status string, limit int) ([]entity.CatalystEvent, error) {
	var out []entity.CatalystEvent
	for _, ev := range f.events {
		if status == "" || ev.Status == status {
			out = append(out, *ev)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCatalystRepo) Update(_ context.Context, event *entity.CatalystEvent) error {
	for i, ev := range f.events {
		if ev.ID == event.ID {
			copied := *event
			f.events[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("catalyst event %d not found", event.ID)
}
