package ghostfolio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/ghostsync/internal/model"
)

const testAccountID = "4b3f1c2e-8a6d-4e0b-9f1a-2c3d4e5f6a7b"

func TestFindAccountByName(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/account" || r.Method != http.MethodGet {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"accounts":[
			{"id":"a-1","name":"Savings","currency":"EUR","balance":10,"isExcluded":false,"platformId":null},
			{"id":"` + testAccountID + `","name":"Alpaca","currency":"USD","balance":250.5,"isExcluded":false,"platformId":"p-1"}
		]}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})
	ctx := context.Background()

	acct, err := c.FindAccountByName(ctx, "Alpaca")
	if err != nil {
		t.Fatalf("FindAccountByName() error = %v", err)
	}
	if acct.ID != testAccountID || acct.Balance != 250.5 {
		t.Errorf("account = %+v", acct)
	}
	if acct.PlatformID == nil || *acct.PlatformID != "p-1" {
		t.Errorf("PlatformID = %v, want p-1", acct.PlatformID)
	}

	if _, err := c.FindAccountByName(ctx, "Missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("FindAccountByName(Missing) error = %v, want %v", err, ErrAccountNotFound)
	}
}

func TestCreateAccount(t *testing.T) {
	var got map[string]any
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/account" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body not JSON: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"` + testAccountID + `","name":"Alpaca"}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	platform := "p-1"
	id, err := c.CreateAccount(context.Background(), AccountInput{
		Name:       "Alpaca",
		Currency:   "USD",
		PlatformID: &platform,
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if id != testAccountID {
		t.Errorf("id = %q, want %q", id, testAccountID)
	}

	if got["name"] != "Alpaca" || got["currency"] != "USD" || got["balance"] != float64(0) {
		t.Errorf("body = %v", got)
	}
	if got["isExcluded"] != false || got["platformId"] != "p-1" {
		t.Errorf("body = %v", got)
	}
	if _, ok := got["id"]; ok {
		t.Errorf("create body carries id: %v", got)
	}
}

func TestCreateAccountNotRetried(t *testing.T) {
	var attempts int32
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	if _, err := c.CreateAccount(context.Background(), AccountInput{Name: "Alpaca", Currency: "USD"}); err == nil {
		t.Fatal("CreateAccount() error = nil")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestCreateAccountInvalidID(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":""}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	if _, err := c.CreateAccount(context.Background(), AccountInput{Name: "Alpaca"}); err == nil {
		t.Error("CreateAccount() accepted an empty id")
	}
}

func TestUpdateAccount(t *testing.T) {
	var got AccountInput
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/account/"+testAccountID {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	err := c.UpdateAccount(context.Background(), testAccountID, AccountInput{
		Name:     "Alpaca",
		Currency: "USD",
		Balance:  1234.56,
	})
	if err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}
	if got.ID != testAccountID || got.Balance != 1234.56 || got.Name != "Alpaca" {
		t.Errorf("body = %+v", got)
	}
}

func TestListActivities(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/order" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("accounts"); got != testAccountID {
			t.Errorf("accounts = %q, want %q", got, testAccountID)
		}
		w.Write([]byte(`{"activities":[
			{"id":"x1","accountId":"` + testAccountID + `","comment":"alpaca_id=abc","date":"2024-01-15T00:00:00.000Z","type":"BUY","quantity":1,"unitPrice":100,"fee":0,"SymbolProfile":{"symbol":"AAPL","dataSource":"YAHOO"}},
			{"id":"x2","accountId":"` + testAccountID + `","comment":null,"date":"2024-01-16T00:00:00.000Z","type":"DIVIDEND","quantity":1,"unitPrice":2,"fee":0,"SymbolProfile":{"symbol":"MSFT"}}
		],"count":2}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	acts, err := c.ListActivities(context.Background(), testAccountID)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("len = %d, want 2", len(acts))
	}
	if acts[0].Comment != "alpaca_id=abc" || acts[1].Comment != "" {
		t.Errorf("comments = %q, %q", acts[0].Comment, acts[1].Comment)
	}
	if acts[0].SymbolProfile.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", acts[0].SymbolProfile.Symbol)
	}
}

func TestImportActivities(t *testing.T) {
	batch := []model.ImportActivity{{
		AccountID:  testAccountID,
		Comment:    "alpaca_id=abc",
		Currency:   "USD",
		DataSource: "YAHOO",
		Date:       time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Quantity:   10,
		Symbol:     "AAPL",
		Type:       model.Buy,
		UnitPrice:  100,
	}}

	tests := []struct {
		name       string
		dryRun     bool
		wantQuery  string
		response   string
		wantAccept int
	}{
		{"real import", false, "", `{"activities":[{"id":"n1"}]}`, 1},
		{"dry run", true, "dryRun=true", `{"activities":[{},{}]}`, 2},
		{"unexpected body", false, "", `"ok"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/v1/import" {
					t.Errorf("request = %s %s", r.Method, r.URL.Path)
				}
				if r.URL.RawQuery != tt.wantQuery {
					t.Errorf("query = %q, want %q", r.URL.RawQuery, tt.wantQuery)
				}
				var body struct {
					Activities []map[string]any `json:"activities"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode body: %v", err)
				}
				if len(body.Activities) != 1 || body.Activities[0]["quantity"] != float64(10) {
					t.Errorf("activities = %v", body.Activities)
				}
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(tt.response))
			})
			c := newTestClient(server.URL, Credentials{Token: "tok"})

			res, err := c.ImportActivities(context.Background(), batch, tt.dryRun)
			if err != nil {
				t.Fatalf("ImportActivities() error = %v", err)
			}
			if res.Accepted != tt.wantAccept {
				t.Errorf("Accepted = %d, want %d", res.Accepted, tt.wantAccept)
			}
		})
	}
}

func TestImportActivitiesNotRetried(t *testing.T) {
	var attempts int32
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Import failed"}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	_, err := c.ImportActivities(context.Background(), nil, false)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Import failed" {
		t.Errorf("ImportActivities() error = %v, want APIError with message", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestDeleteActivities(t *testing.T) {
	var paths []string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		paths = append(paths, r.URL.RequestURI())
		w.Write([]byte(`{}`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})
	ctx := context.Background()

	if err := c.DeleteActivities(ctx, testAccountID); err != nil {
		t.Fatalf("DeleteActivities() error = %v", err)
	}
	if err := c.DeleteActivity(ctx, "x1"); err != nil {
		t.Fatalf("DeleteActivity() error = %v", err)
	}

	want := []string{"/api/v1/order?accounts=" + testAccountID, "/api/v1/order/x1"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestInfoIsPublic(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("info request carries Authorization")
		}
		w.Write([]byte(`{"baseCurrency":"USD","currencies":["USD","EUR"],"isReadOnlyMode":false}`))
	})
	c := newTestClient(server.URL, Credentials{})

	info, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.BaseCurrency != "USD" || len(info.Currencies) != 2 {
		t.Errorf("info = %+v", info)
	}
}

func TestListPlatforms(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/platform" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"p-1","name":"Alpaca","url":"https://alpaca.markets"}]`))
	})
	c := newTestClient(server.URL, Credentials{Token: "tok"})

	platforms, err := c.ListPlatforms(context.Background())
	if err != nil {
		t.Fatalf("ListPlatforms() error = %v", err)
	}
	if len(platforms) != 1 || platforms[0].Name != "Alpaca" {
		t.Errorf("platforms = %+v", platforms)
	}
}
