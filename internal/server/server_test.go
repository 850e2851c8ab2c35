package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rkaran/silverdash/internal/calculator"
	"github.com/rkaran/silverdash/internal/config"
	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/purchases"
	"github.com/rkaran/silverdash/internal/render"
	"github.com/rkaran/silverdash/internal/uploads"
)

const testGeoJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","properties":{"ST_NM":"Rajasthan"},"geometry":{"type":"Polygon","coordinates":[[[70,24],[78,24],[78,30],[70,30],[70,24]]]}},
  {"type":"Feature","properties":{"ST_NM":"NCT of Delhi"},"geometry":{"type":"Polygon","coordinates":[[[76.8,28.4],[77.3,28.4],[77.3,28.9],[76.8,28.9],[76.8,28.4]]]}},
  {"type":"Feature","properties":{"ST_NM":"Kerala"},"geometry":{"type":"Polygon","coordinates":[[[75,8],[77,8],[77,12],[75,12],[75,8]]]}}
]}`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	rates, err := calculator.NewRates(config.DefaultCurrencyRates())
	if err != nil {
		t.Fatal(err)
	}
	src := purchases.SourceFunc(func(ctx context.Context) (model.Dataset, error) {
		ds := purchases.Sample()
		ds.Source = model.SourceCSV
		ds.Origin = "states.csv"
		return ds, nil
	})

	s := New(config.ServerConfig{AllowedOrigins: []string{"*"}}, Deps{
		Calculator: calculator.New(rates),
		States:     purchases.NewProvider(src, nil),
		Uploads:    uploads.NewStore(uploads.Config{MaxBytes: 4096, TTL: time.Minute, MaxEntries: 4}),
		Map:        render.DefaultMapOptions(),
		MaxUpload:  4096,
	}, nil)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Hub().Close()
		ts.Close()
	})
	return s, ts
}

func doJSON(t *testing.T, method, url, body string, wantCode int, out interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantCode {
		t.Fatalf("%s %s status = %d, want %d; body %s", method, url, resp.StatusCode, wantCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
	}
}

func TestQuoteHandler(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantTotal string
		wantConv  string
	}{
		{"defaults", "", http.StatusOK, "75", "75"},
		{"kilograms in USD", "?weight=1&unit=kilograms&price=75&currency=usd", http.StatusOK, "75000", "900"},
		{"grams in EUR", "?weight=10&price=100&currency=EUR", http.StatusOK, "1000", "11"},
		{"weight not a number", "?weight=abc", http.StatusBadRequest, "", ""},
		{"weight out of range", "?weight=500", http.StatusUnprocessableEntity, "", ""},
		{"price out of range", "?price=10", http.StatusUnprocessableEntity, "", ""},
		{"bad unit", "?unit=ounces", http.StatusUnprocessableEntity, "", ""},
		{"unknown currency", "?currency=JPY", http.StatusUnprocessableEntity, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				TotalINR       string   `json:"total_inr"`
				TotalConverted string   `json:"total_converted"`
				Error          string   `json:"error"`
				Hints          []string `json:"hints"`
			}
			doJSON(t, "GET", ts.URL+"/api/v1/quote"+tt.query, "", tt.wantCode, &out)

			if tt.wantCode != http.StatusOK {
				if out.Error == "" || len(out.Hints) == 0 {
					t.Errorf("error body = %+v, want error and hints", out)
				}
				return
			}
			if out.TotalINR != tt.wantTotal {
				t.Errorf("total_inr = %q, want %q", out.TotalINR, tt.wantTotal)
			}
			if out.TotalConverted != tt.wantConv {
				t.Errorf("total_converted = %q, want %q", out.TotalConverted, tt.wantConv)
			}
		})
	}
}

func TestCurrenciesHandler(t *testing.T) {
	_, ts := newTestServer(t)

	var out struct {
		Base       string `json:"base"`
		Currencies []struct {
			Code string `json:"code"`
		} `json:"currencies"`
	}
	doJSON(t, "GET", ts.URL+"/api/v1/currencies", "", http.StatusOK, &out)

	if out.Base != "INR" || len(out.Currencies) != 5 || out.Currencies[0].Code != "INR" {
		t.Errorf("currencies = %+v", out)
	}
}

func TestHistoryHandler(t *testing.T) {
	_, ts := newTestServer(t)

	counts := 0
	for _, b := range []string{"le20000", "between", "ge30000"} {
		var out historyResponse
		doJSON(t, "GET", ts.URL+"/api/v1/history?bracket="+b, "", http.StatusOK, &out)
		if out.Stats.Count != len(out.Points) {
			t.Errorf("%s: stats.count = %d, points = %d", b, out.Stats.Count, len(out.Points))
		}
		counts += out.Stats.Count
	}

	var all historyResponse
	doJSON(t, "GET", ts.URL+"/api/v1/history", "", http.StatusOK, &all)
	if all.Bracket != "all" || all.Stats.Count != 395 {
		t.Errorf("all bracket = %q with %d points, want all with 395", all.Bracket, all.Stats.Count)
	}
	if counts != all.Stats.Count {
		t.Errorf("bracket counts sum to %d, want %d", counts, all.Stats.Count)
	}

	doJSON(t, "GET", ts.URL+"/api/v1/history?bracket=cheap", "", http.StatusBadRequest, nil)
}

func TestStatesHandlers(t *testing.T) {
	_, ts := newTestServer(t)

	var states statesResponse
	doJSON(t, "GET", ts.URL+"/api/v1/states?search=PRADESH", "", http.StatusOK, &states)
	if len(states.Rows) != 1 || states.Rows[0].State != "Uttar Pradesh" {
		t.Errorf("search rows = %+v", states.Rows)
	}
	if states.Summary.TopState != "Rajasthan" || states.Insights.DifferenceKg != 1800 {
		t.Errorf("summary = %+v, insights = %+v", states.Summary, states.Insights)
	}
	if states.Source != model.SourceCSV {
		t.Errorf("source = %q, want csv", states.Source)
	}

	var top struct {
		N    int                   `json:"n"`
		Rows []model.StatePurchase `json:"rows"`
	}
	doJSON(t, "GET", ts.URL+"/api/v1/states/top?n=3", "", http.StatusOK, &top)
	if len(top.Rows) != 3 || top.Rows[1].State != "Gujarat" {
		t.Errorf("top rows = %+v", top.Rows)
	}
	doJSON(t, "GET", ts.URL+"/api/v1/states/top?n=0", "", http.StatusBadRequest, nil)

	var ev Event
	doJSON(t, "POST", ts.URL+"/api/v1/states/reload", "", http.StatusOK, &ev)
	if ev.Type != EventDatasetReloaded || ev.Rows != 10 {
		t.Errorf("reload event = %+v", ev)
	}
}

func TestJanuaryHandler(t *testing.T) {
	_, ts := newTestServer(t)

	var out januaryResponse
	doJSON(t, "GET", ts.URL+"/api/v1/january", "", http.StatusOK, &out)

	if len(out.Days) != 31 || len(out.Weekly) != 4 {
		t.Fatalf("days = %d, weeks = %d", len(out.Days), len(out.Weekly))
	}
	var weekSum float64
	for _, w := range out.Weekly {
		weekSum += w.TotalKg
	}
	if weekSum != out.Summary.TotalKg {
		t.Errorf("weekly sum = %v, want total %v", weekSum, out.Summary.TotalKg)
	}
	if got := out.Cumulative[30].CumulativeKg; got != out.Summary.TotalKg {
		t.Errorf("final cumulative = %v, want %v", got, out.Summary.TotalKg)
	}
}

func TestMapHandlers(t *testing.T) {
	_, ts := newTestServer(t)

	var u uploads.Upload
	doJSON(t, "POST", ts.URL+"/api/v1/maps?name=india.geojson", testGeoJSON, http.StatusCreated, &u)
	if u.Features != 3 || u.DefaultColumn != "ST_NM" {
		t.Fatalf("upload = %+v", u)
	}

	var res struct {
		Matched        int      `json:"matched"`
		Unmatched      int      `json:"unmatched"`
		Total          int      `json:"total"`
		UnmatchedNames []string `json:"unmatched_names"`
	}
	doJSON(t, "GET", ts.URL+"/api/v1/maps/"+u.ID+"/join", "", http.StatusOK, &res)
	if res.Matched != 2 || res.Unmatched != 1 || res.Matched+res.Unmatched != res.Total {
		t.Errorf("join = %+v", res)
	}
	if len(res.UnmatchedNames) != 1 || res.UnmatchedNames[0] != "Kerala" {
		t.Errorf("unmatched names = %v", res.UnmatchedNames)
	}

	var bad errorResponse
	doJSON(t, "GET", ts.URL+"/api/v1/maps/"+u.ID+"/join?column=nope", "", http.StatusBadRequest, &bad)
	if !strings.Contains(bad.Hints[0], "ST_NM") {
		t.Errorf("hints = %v, want available columns", bad.Hints)
	}

	resp, err := http.Get(ts.URL + "/api/v1/maps/" + u.ID + "/map.svg?column=ST_NM")
	if err != nil {
		t.Fatal(err)
	}
	svgBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("map.svg status = %d, content type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(svgBody), render.MapTitle) || !strings.Contains(string(svgBody), "Delhi") {
		t.Error("map.svg missing title or labels")
	}

	doJSON(t, "DELETE", ts.URL+"/api/v1/maps/"+u.ID, "", http.StatusNoContent, nil)
	doJSON(t, "GET", ts.URL+"/api/v1/maps/"+u.ID, "", http.StatusNotFound, nil)
}

func TestUploadMapHandler_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	var out errorResponse
	doJSON(t, "POST", ts.URL+"/api/v1/maps", `{"type":"FeatureCollection"`, http.StatusUnprocessableEntity, &out)
	if !strings.HasPrefix(out.Error, "Error loading GeoJSON") || len(out.Hints) != 4 {
		t.Errorf("error body = %+v", out)
	}

	var null errorResponse
	doJSON(t, "POST", ts.URL+"/api/v1/maps", `{"type":"FeatureCollection","features":[null]}`, http.StatusUnprocessableEntity, &null)
	if !strings.Contains(null.Error, "feature 0 is null") || len(null.Hints) != 4 {
		t.Errorf("null feature error body = %+v", null)
	}

	doJSON(t, "POST", ts.URL+"/api/v1/maps", strings.Repeat(" ", 5000), http.StatusRequestEntityTooLarge, nil)
}

func TestChartHandlers(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/", "/charts/history?bracket=ge30000", "/charts/states", "/charts/january", "/charts/cumulative", "/charts/weekly"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("GET %s content type = %q", path, ct)
		}
	}

	doJSON(t, "GET", ts.URL+"/charts/pie", "", http.StatusNotFound, nil)
}

func TestHealthHandler(t *testing.T) {
	_, ts := newTestServer(t)

	var out healthResponse
	doJSON(t, "GET", ts.URL+"/healthz", "", http.StatusOK, &out)
	if out.Status != "healthy" {
		t.Errorf("status = %q, want healthy", out.Status)
	}
	for _, c := range []string{"states", "uploads", "websocket"} {
		if _, ok := out.Components[c]; !ok {
			t.Errorf("missing component %q", c)
		}
	}
	if _, ok := out.Components["postgres"]; ok {
		t.Error("postgres component reported without a database")
	}
}

func TestWebsocket_ReloadEvent(t *testing.T) {
	s, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for s.Hub().Clients() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	doJSON(t, "POST", ts.URL+"/api/v1/states/reload", "", http.StatusOK, nil)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != EventDatasetReloaded || ev.Source != model.SourceCSV || ev.Rows != 10 {
		t.Errorf("event = %+v", ev)
	}
}
