package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/model"
	"github.com/fleveque/logo-fetch/internal/resolver"
)

// fakeResolver resolves from a fixed table. Companies listed in panics
// make Resolve panic; companies missing from the table fail resolution.
type fakeResolver struct {
	enabled bool
	domains map[string]string
	panics  map[string]bool
	calls   atomic.Int32
}

func (f *fakeResolver) Enabled() bool { return f.enabled }

func (f *fakeResolver) Resolve(_ context.Context, company, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	f.calls.Add(1)
	if f.panics[company] {
		panic("resolver blew up for " + company)
	}
	domain, ok := f.domains[company]
	if !ok {
		return "", &resolver.ResolutionError{Company: company, Raw: "I don't know"}
	}
	return domain, nil
}

// fakeSource serves variants by domain or by name. An optional hook runs
// before every call.
type fakeSource struct {
	byDomain map[string][]model.LogoVariant
	byName   map[string][]model.LogoVariant
	err      error
	hook     func()

	mu          sync.Mutex
	domainCalls []string
	nameCalls   []string
}

func (f *fakeSource) FetchVariants(_ context.Context, domain string) ([]model.LogoVariant, error) {
	if f.hook != nil {
		f.hook()
	}
	f.mu.Lock()
	f.domainCalls = append(f.domainCalls, domain)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byDomain[domain], nil
}

func (f *fakeSource) FetchVariantsByName(_ context.Context, name string) ([]model.LogoVariant, error) {
	f.mu.Lock()
	f.nameCalls = append(f.nameCalls, name)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byName[name], nil
}

var (
	acmeLight = wordmark("https://cdn.example.com/acme-light.svg", model.ModeLight, "svg")
	acmeDark  = wordmark("https://cdn.example.com/acme-dark.png", model.ModeDark, "png")
)

func newTestService(r *fakeResolver, s *fakeSource) *LogoService {
	return NewLogoService(r, s, zap.NewNop())
}

func defaultOpts() LookupOptions {
	return LookupOptions{Preferences: model.DefaultPreferences()}
}

func TestGetLogo_ResolvesAndSelects(t *testing.T) {
	r := &fakeResolver{enabled: true, domains: map[string]string{"Acme": "acme.com"}}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{"acme.com": {acmeDark, acmeLight}}}
	svc := newTestService(r, s)

	logo, err := svc.GetLogo(context.Background(), "Acme", defaultOpts())
	if err != nil {
		t.Fatalf("GetLogo failed: %v", err)
	}
	if logo == nil || logo.URL != acmeLight.URL {
		t.Errorf("expected light svg, got %+v", logo)
	}

	dark := LookupOptions{Preferences: model.SelectionPreferences{PreferredMode: model.ModeDark, PreferSVG: true}}
	logo, err = svc.GetLogo(context.Background(), "Acme", dark)
	if err != nil {
		t.Fatalf("GetLogo failed: %v", err)
	}
	if logo == nil || logo.URL != acmeDark.URL {
		t.Errorf("expected dark png, got %+v", logo)
	}
}

func TestGetLogo_ExplicitDomainSkipsResolution(t *testing.T) {
	r := &fakeResolver{enabled: true}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{"acme.io": {acmeLight}}}
	svc := newTestService(r, s)

	opts := defaultOpts()
	opts.Domain = "acme.io"
	logo, err := svc.GetLogo(context.Background(), "Acme", opts)
	if err != nil {
		t.Fatalf("GetLogo failed: %v", err)
	}
	if logo == nil {
		t.Fatal("expected a logo")
	}
	if r.calls.Load() != 0 {
		t.Errorf("expected no LLM lookups, got %d", r.calls.Load())
	}
}

func TestGetLogo_NameSearchFallback(t *testing.T) {
	r := &fakeResolver{enabled: false}
	s := &fakeSource{byName: map[string][]model.LogoVariant{"Acme": {acmeLight}}}
	svc := newTestService(r, s)

	logo, err := svc.GetLogo(context.Background(), "Acme", defaultOpts())
	if err != nil {
		t.Fatalf("GetLogo failed: %v", err)
	}
	if logo == nil || logo.URL != acmeLight.URL {
		t.Errorf("expected name search result, got %+v", logo)
	}
	if len(s.nameCalls) != 1 || len(s.domainCalls) != 0 {
		t.Errorf("expected one name search and no domain fetch, got %v / %v", s.nameCalls, s.domainCalls)
	}
}

func TestGetLogo_DisabledResolverStillHonorsDomain(t *testing.T) {
	r := &fakeResolver{enabled: false}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{"acme.com": {acmeLight}}}
	svc := newTestService(r, s)

	opts := defaultOpts()
	opts.Domain = "acme.com"
	if _, err := svc.GetLogo(context.Background(), "Acme", opts); err != nil {
		t.Fatalf("GetLogo failed: %v", err)
	}
	if len(s.domainCalls) != 1 || s.domainCalls[0] != "acme.com" {
		t.Errorf("expected domain fetch for acme.com, got %v", s.domainCalls)
	}
}

func TestGetLogo_NotFound(t *testing.T) {
	r := &fakeResolver{enabled: true, domains: map[string]string{"Acme": "acme.com"}}
	svc := newTestService(r, &fakeSource{})

	logo, err := svc.GetLogo(context.Background(), "Acme", defaultOpts())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if logo != nil {
		t.Errorf("expected nil logo, got %+v", logo)
	}
}

func TestGetAllLogos_KeepsProviderOrder(t *testing.T) {
	r := &fakeResolver{enabled: true, domains: map[string]string{"Acme": "acme.com"}}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{"acme.com": {acmeDark, acmeLight}}}
	svc := newTestService(r, s)

	variants, err := svc.GetAllLogos(context.Background(), "Acme", "")
	if err != nil {
		t.Fatalf("GetAllLogos failed: %v", err)
	}
	if len(variants) != 2 || variants[0].URL != acmeDark.URL {
		t.Errorf("expected provider order, got %+v", variants)
	}
}

func TestLookupMany_MixedBatch(t *testing.T) {
	r := &fakeResolver{enabled: true, domains: map[string]string{"Acme": "acme.com"}}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{"acme.com": {acmeLight}}}
	svc := newTestService(r, s)

	results := svc.LookupMany(context.Background(), []string{"Acme", "Bogus"}, defaultOpts())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Company != "Acme" || results[0].Logo == nil || results[0].Error != "" {
		t.Errorf("unexpected Acme result %+v", results[0])
	}

	bogus := results[1]
	if bogus.Company != "Bogus" || bogus.Logo != nil {
		t.Errorf("unexpected Bogus result %+v", bogus)
	}
	want := (&resolver.ResolutionError{Company: "Bogus", Raw: "I don't know"}).Error()
	if bogus.Error != want {
		t.Errorf("expected error %q, got %q", want, bogus.Error)
	}
}

func TestLookupMany_NotFoundIsNotAnError(t *testing.T) {
	r := &fakeResolver{enabled: true, domains: map[string]string{"Ghost": "ghost.example"}}
	svc := newTestService(r, &fakeSource{})

	results := svc.LookupMany(context.Background(), []string{"Ghost"}, defaultOpts())
	if results[0].Logo != nil || results[0].Error != "" {
		t.Errorf("expected both logo and error absent, got %+v", results[0])
	}
	if results[0].Reason() != model.ReasonNotFound {
		t.Errorf("expected reason %q, got %q", model.ReasonNotFound, results[0].Reason())
	}
}

func TestLookupMany_PanicIsIsolated(t *testing.T) {
	r := &fakeResolver{
		enabled: true,
		domains: map[string]string{"Acme": "acme.com", "Globex": "globex.com"},
		panics:  map[string]bool{"Boom": true},
	}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{
		"acme.com":   {acmeLight},
		"globex.com": {acmeDark},
	}}
	svc := newTestService(r, s)

	results := svc.LookupMany(context.Background(), []string{"Acme", "Boom", "Globex"}, defaultOpts())
	if results[1].Logo != nil || results[1].Error == "" {
		t.Errorf("expected panic recorded as error, got %+v", results[1])
	}
	if results[0].Logo == nil || results[2].Logo == nil {
		t.Errorf("expected siblings unaffected, got %+v / %+v", results[0], results[2])
	}
}

func TestLookupMany_SourceErrorRecorded(t *testing.T) {
	r := &fakeResolver{enabled: true, domains: map[string]string{"Acme": "acme.com"}}
	svc := newTestService(r, &fakeSource{err: errors.New("brand.dev returned 500: boom")})

	results := svc.LookupMany(context.Background(), []string{"Acme"}, defaultOpts())
	if results[0].Error != "brand.dev returned 500: boom" {
		t.Errorf("unexpected error %q", results[0].Error)
	}
}

func TestLookupMany_OrderAndDuplicates(t *testing.T) {
	companies := []string{"Acme", "Globex", "Acme", "Initech", "Acme"}
	r := &fakeResolver{enabled: true, domains: map[string]string{
		"Acme": "acme.com", "Globex": "globex.com", "Initech": "initech.com",
	}}

	// Later companies finish first.
	var seen atomic.Int32
	s := &fakeSource{
		byDomain: map[string][]model.LogoVariant{
			"acme.com":    {acmeLight},
			"globex.com":  {acmeDark},
			"initech.com": {acmeLight},
		},
		hook: func() {
			n := seen.Add(1)
			time.Sleep(time.Duration(10-n) * time.Millisecond)
		},
	}
	svc := newTestService(r, s)

	results := svc.LookupMany(context.Background(), companies, defaultOpts())
	if len(results) != len(companies) {
		t.Fatalf("expected %d results, got %d", len(companies), len(results))
	}
	for i, c := range companies {
		if results[i].Company != c {
			t.Errorf("result %d: expected %s, got %s", i, c, results[i].Company)
		}
		if results[i].Logo == nil {
			t.Errorf("result %d: expected a logo", i)
		}
	}
}

func TestLookupMany_RunsConcurrently(t *testing.T) {
	companies := []string{"A", "B", "C", "D"}
	domains := map[string]string{"A": "a.com", "B": "b.com", "C": "c.com", "D": "d.com"}

	// Every fetch waits until all of them have started. A sequential
	// implementation would hit the timeout.
	var wg sync.WaitGroup
	wg.Add(len(companies))
	allStarted := make(chan struct{})
	go func() {
		wg.Wait()
		close(allStarted)
	}()

	var timedOut atomic.Bool
	s := &fakeSource{hook: func() {
		wg.Done()
		select {
		case <-allStarted:
		case <-time.After(2 * time.Second):
			timedOut.Store(true)
		}
	}}
	svc := newTestService(&fakeResolver{enabled: true, domains: domains}, s)

	results := svc.LookupMany(context.Background(), companies, defaultOpts())
	if timedOut.Load() {
		t.Fatal("lookups did not run concurrently")
	}
	if len(results) != len(companies) {
		t.Errorf("expected %d results, got %d", len(companies), len(results))
	}
}

func TestLookupMany_Empty(t *testing.T) {
	svc := newTestService(&fakeResolver{enabled: true}, &fakeSource{})
	if results := svc.LookupMany(context.Background(), nil, defaultOpts()); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestListMany(t *testing.T) {
	r := &fakeResolver{
		enabled: true,
		domains: map[string]string{"Acme": "acme.com"},
		panics:  map[string]bool{"Boom": true},
	}
	s := &fakeSource{byDomain: map[string][]model.LogoVariant{"acme.com": {acmeDark, acmeLight}}}
	svc := newTestService(r, s)

	results := svc.ListMany(context.Background(), []string{"Acme", "Bogus", "Boom"}, "")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Company != "Acme" || len(results[0].Variants) != 2 {
		t.Errorf("unexpected Acme listing %+v", results[0])
	}
	if results[1].Error == "" || results[1].Variants != nil {
		t.Errorf("expected resolution error for Bogus, got %+v", results[1])
	}
	if results[2].Error == "" {
		t.Errorf("expected panic recorded for Boom, got %+v", results[2])
	}
}
