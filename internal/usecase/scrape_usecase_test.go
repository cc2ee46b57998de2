package usecase

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/google/uuid"
)

func TestRunUpdatesProductFromExtraction(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://amazon.com/dp/X")
	if _, err := v.alerts.SetTargetPrice(context.Background(), owner, NewSetTargetPriceReq(product.ID, dec("15"), true)); err != nil {
		t.Fatalf("set target: %v", err)
	}

	v.extractor.res = &ExtractRes{
		Title:    "Widget",
		Price:    dec("19.99"),
		Currency: "USD",
		ImageURL: "https://img.example/w.png",
		Raw:      []byte(`{"success":true}`),
	}

	res, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := v.product(product.ID)
	if !got.CurrentPrice.Equal(dec("19.99")) || got.Title != "Widget" || got.Currency != "USD" {
		t.Fatalf("want Widget 19.99 USD, got %s %s %s", got.Title, got.CurrentPrice, got.Currency)
	}
	if got.LastCheckedAt == nil || !got.IsActive {
		t.Fatal("want last_checked_at set and product active")
	}
	if got.ImageURL == nil || *got.ImageURL != "https://img.example/w.png" {
		t.Fatalf("want image url updated, got %v", got.ImageURL)
	}

	history := v.history()
	if len(history) != 1 || !history[0].Price.Equal(dec("19.99")) {
		t.Fatalf("want one observation of 19.99, got %+v", history)
	}

	logs := v.logs()
	if len(logs) != 1 || !logs[0].Success {
		t.Fatalf("want one successful log, got %+v", logs)
	}

	if len(res.Triggered) != 0 {
		t.Fatalf("want no triggered alerts for target 15, got %d", len(res.Triggered))
	}
	if res.Region != domain.RegionUS {
		t.Fatalf("want region US, got %s", res.Region)
	}

	if v.bus.count(domain.TableProducts) != 1 || v.bus.count(domain.TablePriceHistory) != 1 || v.bus.count(domain.TableScrapeLogs) != 1 {
		t.Fatalf("want product, history and log change events, got %+v", v.bus.events)
	}
	if len(v.archive.reqs) != 1 || v.archive.reqs[0].LogID != res.LogID {
		t.Fatalf("want raw payload archived for log %s", res.LogID)
	}
}

func TestRunRecoversTitleFromMetadata(t *testing.T) {
	cases := []struct {
		name      string
		title     string
		price     string
		meta      string
		wantTitle string
		recovered bool
	}{
		{"placeholder title", "Continue Shopping", "25.00", "Real Widget: Amazon.com: Electronics", "Real Widget", true},
		{"empty title", "", "25.00", "Gadget Pro: Store", "Gadget Pro", true},
		{"zero price", "Widget", "0", "Widget Deluxe : Shop", "Widget Deluxe", true},
		{"placeholder without metadata", "continue shopping", "0", "", domain.UnknownTitle, false},
		{"empty without metadata", "", "10", "", domain.UnknownTitle, false},
		{"valid title kept", "Widget", "10", "Other: Shop", "Widget", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newEnv()
			owner := uuid.New()
			product := v.addProduct(owner, "https://www.amazon.in/dp/Y")

			v.extractor.res = &ExtractRes{Title: tc.title, Price: dec(tc.price), MetadataTitle: tc.meta}

			res, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := v.product(product.ID)
			if got.Title != tc.wantTitle {
				t.Fatalf("want title %q, got %q", tc.wantTitle, got.Title)
			}
			if strings.Contains(strings.ToLower(got.Title), "continue shopping") {
				t.Fatal("placeholder title must never be stored")
			}
			if res.TitleRecovered != tc.recovered {
				t.Fatalf("want recovered=%v, got %v", tc.recovered, res.TitleRecovered)
			}
			if !got.CurrentPrice.Equal(dec(tc.price)) {
				t.Fatalf("want price %s left as reported, got %s", tc.price, got.CurrentPrice)
			}
			if got.Currency != domain.DefaultCurrency {
				t.Fatalf("want default currency, got %s", got.Currency)
			}
			if res.Region != domain.RegionIN {
				t.Fatalf("want region IN, got %s", res.Region)
			}
		})
	}
}

func TestRunExtractionFailureLeavesProductUntouched(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://amazon.com/dp/X")

	xerr := e.NewTransportError(500, "internal error", nil)
	xerr.Raw = []byte(`{"status":500}`)
	v.extractor.err = xerr

	_, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
	if !errors.Is(err, e.ErrExtraction) || !errors.Is(err, e.ErrExtractionTransport) {
		t.Fatalf("want extraction transport error, got %v", err)
	}

	if got := v.product(product.ID); got.Title != domain.PlaceholderTitle || !got.CurrentPrice.IsZero() || got.LastCheckedAt != nil {
		t.Fatalf("product must not be mutated, got %+v", got)
	}

	logs := v.logs()
	if len(logs) != 1 || logs[0].Success {
		t.Fatalf("want exactly one failed log, got %+v", logs)
	}
	if logs[0].ErrorMessage == nil || !strings.Contains(*logs[0].ErrorMessage, "500") {
		t.Fatalf("want status 500 in error message, got %v", logs[0].ErrorMessage)
	}
	if string(logs[0].RawResponse) != `{"status":500}` {
		t.Fatalf("want raw response kept, got %s", logs[0].RawResponse)
	}

	if len(v.history()) != 0 {
		t.Fatal("no observation must be written on extraction failure")
	}
}

func TestRunReportedFailure(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://amazon.com/dp/X")
	v.extractor.err = e.NewReportedError("blocked by site")

	_, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
	if !errors.Is(err, e.ErrExtractionReported) {
		t.Fatalf("want reported error, got %v", err)
	}

	logs := v.logs()
	if len(logs) != 1 || !strings.Contains(*logs[0].ErrorMessage, "blocked by site") {
		t.Fatalf("want failed log with service message, got %+v", logs)
	}
}

func TestRunPersistenceFailureIsAtomic(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://amazon.com/dp/X")
	v.store.appendErr = errors.New("disk full")
	v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("19.99"), Currency: "USD"}

	_, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
	if !errors.Is(err, e.ErrPersistence) {
		t.Fatalf("want persistence error, got %v", err)
	}

	if got := v.product(product.ID); got.Title != domain.PlaceholderTitle {
		t.Fatalf("product update must be rolled back, got title %q", got.Title)
	}

	logs := v.logs()
	if len(logs) != 1 || logs[0].Success {
		t.Fatalf("want only the failed log after rollback, got %+v", logs)
	}
	if !strings.Contains(*logs[0].ErrorMessage, "disk full") {
		t.Fatalf("want persistence cause in log, got %s", *logs[0].ErrorMessage)
	}
}

func TestRunFlagsCoercedPrice(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://amazon.co.uk/dp/X")
	v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("0"), PriceCoerced: true}

	res, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.PriceCoerced {
		t.Fatal("want PriceCoerced flag")
	}

	history := v.history()
	if len(history) != 1 || !history[0].Price.IsZero() {
		t.Fatalf("want one observation of 0, got %+v", history)
	}
}

func TestRunNormalizesCurrency(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		want     string
	}{
		{name: "lower case code", currency: " eur ", want: "EUR"},
		{name: "spelled out", currency: "US Dollars", want: domain.DefaultCurrency},
		{name: "symbol", currency: "$", want: domain.DefaultCurrency},
		{name: "empty", currency: "", want: domain.DefaultCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newEnv()
			owner := uuid.New()
			product := v.addProduct(owner, "https://amazon.com/dp/X")
			v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("19.99"), Currency: tt.currency}

			res, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Currency != tt.want {
				t.Fatalf("want currency %s, got %s", tt.want, res.Currency)
			}
			if got := v.product(product.ID); got.Currency != tt.want || !got.CurrentPrice.Equal(dec("19.99")) {
				t.Fatalf("want 19.99 %s stored, got %s %s", tt.want, got.CurrentPrice, got.Currency)
			}
		})
	}
}

func TestRunCoercesOutOfRangePrice(t *testing.T) {
	tests := []struct {
		price   string
		coerced bool
	}{
		{price: "9999999999.99", coerced: false},
		{price: "9999999999.999", coerced: true},
		{price: "12345678901234", coerced: true},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			v := newEnv()
			owner := uuid.New()
			product := v.addProduct(owner, "https://amazon.com/dp/X")
			v.extractor.res = &ExtractRes{Title: "Widget", Price: dec(tt.price), Currency: "USD"}

			res, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.PriceCoerced != tt.coerced {
				t.Fatalf("want coerced=%v, got %v", tt.coerced, res.PriceCoerced)
			}
			if tt.coerced && !res.Price.IsZero() {
				t.Fatalf("want out-of-range price coerced to 0, got %s", res.Price)
			}
			if !tt.coerced && !res.Price.Equal(dec(tt.price)) {
				t.Fatalf("want price %s kept, got %s", tt.price, res.Price)
			}
		})
	}
}

func TestRunJoinsInFlightRun(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://amazon.com/dp/X")
	v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("10")}
	v.extractor.gate = make(chan struct{})

	var wg sync.WaitGroup
	results := make([]*OrchestratorResult, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := v.scrape.Run(context.Background(), NewRunScrapeReq(owner, product.ID, product.URL))
			if err != nil {
				t.Errorf("run %d: %v", i, err)
			}
			results[i] = res
		}()
	}

	// ждём, пока первый запуск дойдёт до сервиса извлечения
	for v.extractor.calls.Load() == 0 {
		runtime.Gosched()
	}
	// второй запрос должен успеть присоединиться
	time.Sleep(50 * time.Millisecond)
	close(v.extractor.gate)
	wg.Wait()

	if n := v.extractor.calls.Load(); n != 1 {
		t.Fatalf("want one extraction call, got %d", n)
	}
	if n := len(v.logs()); n != 1 {
		t.Fatalf("want one log entry, got %d", n)
	}
	if results[0] == nil || results[0] != results[1] {
		t.Fatal("want both callers to receive the same result")
	}
}

func TestRunRequiresOwner(t *testing.T) {
	v := newEnv()
	_, err := v.scrape.Run(context.Background(), NewRunScrapeReq(uuid.Nil, uuid.New(), "https://a.com"))
	if !errors.Is(err, e.ErrUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestRunForeignProduct(t *testing.T) {
	v := newEnv()
	product := v.addProduct(uuid.New(), "https://amazon.com/dp/X")
	v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("10")}

	_, err := v.scrape.Run(context.Background(), NewRunScrapeReq(uuid.New(), product.ID, product.URL))
	if !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("want product not found, got %v", err)
	}
	if n := len(v.logs()); n != 0 {
		t.Fatalf("want no log rows for foreign product, got %d", n)
	}
}
