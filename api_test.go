package plaidster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoginWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("expected a form-encoded body, got %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		for key, want := range map[string]string{
			"client_id": "test_id",
			"secret":    "test_secret",
			"username":  "plaid_test",
			"password":  "plaid_good",
			"pin":       "1234",
			"type":      "usaa",
		} {
			if got := r.PostForm.Get(key); got != want {
				t.Errorf("form field %s: expected %q, got %q", key, want, got)
			}
		}

		// The options field is a JSON object serialized into a single
		// form value.
		var options map[string]bool
		if err := json.Unmarshal([]byte(r.PostForm.Get("options")), &options); err != nil {
			t.Errorf("options field is not valid JSON: %v", err)
		}
		want := map[string]bool{"login_only": true, "list": true}
		if diff := cmp.Diff(want, options); diff != "" {
			t.Errorf("unexpected options (-want +got):\n%s", diff)
		}

		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer server.Close()

	outcome, err := newTestClient(server).Login(context.Background(), Credentials{
		Username:        "plaid_test",
		Password:        "plaid_good",
		PIN:             "1234",
		InstitutionType: "usaa",
		Product:         ProductAuth,
	}, LoginOptions{LoginOnly: true, List: true})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if outcome.AccessToken != "tok" {
		t.Errorf("expected access token tok, got %q", outcome.AccessToken)
	}
}

func TestFetchTransactionsWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != transactionsPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		if got := r.PostForm.Get("access_token"); got != "tok" {
			t.Errorf("expected access_token tok, got %q", got)
		}
		var options map[string]interface{}
		if err := json.Unmarshal([]byte(r.PostForm.Get("options")), &options); err != nil {
			t.Errorf("options field is not valid JSON: %v", err)
		}
		if options["pending"] != true {
			t.Errorf("expected pending=true, got %v", options["pending"])
		}
		if options["gte"] != "2014-07-01" || options["lte"] != "2014-07-31" {
			t.Errorf("unexpected date bounds: %v", options)
		}

		w.Write([]byte(`{"access_token":"tok",
			"accounts":[{"_id":"a1","type":"depository"}],
			"transactions":[{"_id":"t1","_account":"a1","amount":12.5,"date":"2014-07-21","name":"Coffee"}]}`))
	}))
	defer server.Close()

	dates := &DateRange{
		Start: time.Date(2014, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2014, 7, 31, 0, 0, 0, 0, time.UTC),
	}
	outcome, err := newTestClient(server).FetchTransactions(context.Background(), "tok", true, dates)
	if err != nil {
		t.Fatalf("FetchTransactions() error = %v", err)
	}
	if len(outcome.Accounts) != 1 || len(outcome.Transactions) != 1 {
		t.Fatalf("expected both batches populated, got %d accounts, %d transactions",
			len(outcome.Accounts), len(outcome.Transactions))
	}
	if outcome.Transactions[0].Date != "2014-07-21" {
		t.Errorf("unexpected transaction date %q", outcome.Transactions[0].Date)
	}
}

func TestFetchBalances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != balancePath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"accounts":[
			{"_id":"a1","balance":{"available":100.5,"current":110.25},"meta":{"name":"Checking","number":"1702"},"type":"depository"},
			{"_id":"a2","balance":{"available":250,"current":250},"meta":{"name":"Savings","number":"9606"},"type":"depository"}
		]}`))
	}))
	defer server.Close()

	accounts, err := newTestClient(server).FetchBalances(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchBalances() error = %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Balance.Current != 110.25 {
		t.Errorf("unexpected current balance %v", accounts[0].Balance.Current)
	}
}

func TestRemoveUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/connect" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"message":"Successfully removed from your account"}`))
	}))
	defer server.Close()

	if err := newTestClient(server).RemoveUser(context.Background(), ProductConnect, "tok"); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}
}

func TestConcurrentRequestsWithDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server).WithDelay(1)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.FetchInstitutions(context.Background()); err != nil {
				t.Errorf("FetchInstitutions() error = %v", err)
			}
		}()
	}
	wg.Wait()

	// The second and third requests each wait out the configured delay.
	if elapsed := time.Since(start); elapsed < 2*time.Second {
		t.Errorf("expected requests spaced by the delay, finished in %v", elapsed)
	}
}

func TestRequestCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := newTestClient(server).SearchInstitutions(ctx, "wells", ProductConnect)
	if err == nil {
		t.Fatal("expected cancellation to surface as a transport failure")
	}
}
