package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// fakeWiki is an httptest handler that speaks just enough of the MediaWiki
// action API for the client: token queries, login and upload.
type fakeWiki struct {
	password    string
	existing    map[string]bool
	uploads     int
	lastComment string
	lastText    string
	lastName    string
}

func (w *fakeWiki) handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			_ = r.ParseForm()
		}
		action := r.FormValue("action")

		switch action {
		case "query":
			tokenType := r.URL.Query().Get("type")
			if tokenType == "" {
				tokenType = "csrf"
			}
			fmt.Fprintf(rw, `{"query":{"tokens":{"%stoken":"%s-token+\\"}}}`, tokenType, tokenType)

		case "login":
			if r.FormValue("lgtoken") == "" {
				fmt.Fprint(rw, `{"login":{"result":"NeedToken"}}`)
				return
			}
			if r.FormValue("lgpassword") == w.password {
				fmt.Fprint(rw, `{"login":{"result":"Success","lgusername":"Uploader"}}`)
			} else {
				fmt.Fprint(rw, `{"login":{"result":"Failed","reason":"Incorrect username or password entered."}}`)
			}

		case "upload":
			w.uploads++
			w.lastName = r.FormValue("filename")
			w.lastText = r.FormValue("text")
			w.lastComment = r.FormValue("comment")

			if r.FormValue("token") == "" {
				fmt.Fprint(rw, `{"error":{"code":"missingparam","info":"The token parameter must be set."}}`)
				return
			}
			if w.existing[w.lastName] && r.FormValue("ignorewarnings") == "" {
				fmt.Fprintf(rw, `{"upload":{"result":"Warning","warnings":{"exists":"%s"}}}`, w.lastName)
				return
			}
			fmt.Fprintf(rw, `{"upload":{"result":"Success","filename":"%s"}}`, w.lastName)

		default:
			http.Error(rw, "unknown action", http.StatusBadRequest)
		}
	}
}

func newTestClient(t *testing.T, w *fakeWiki) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(w.handler())
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "dtMediaWiki test")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, server
}

func writeTestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img001.jpg")
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

// TestLogin_Success verifies the token handshake and session establishment
func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, &fakeWiki{password: "secret"})

	if client.LoggedIn() {
		t.Error("New client should not report a session")
	}
	if err := client.Login(context.Background(), "Uploader", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !client.LoggedIn() {
		t.Error("Client should report a session after login")
	}
}

// TestLogin_BadPassword verifies a failed login surfaces as an AuthError
func TestLogin_BadPassword(t *testing.T) {
	client, _ := newTestClient(t, &fakeWiki{password: "secret"})

	err := client.Login(context.Background(), "Uploader", "wrong")
	if err == nil {
		t.Fatal("Expected login to fail")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected *AuthError, got %T: %v", err, err)
	}
	if authErr.Result != "Failed" {
		t.Errorf("Expected result Failed, got %s", authErr.Result)
	}
	if client.LoggedIn() {
		t.Error("Client should not report a session after failed login")
	}
}

// TestUpload_Success verifies the multipart submission reaches the API
func TestUpload_Success(t *testing.T) {
	fake := &fakeWiki{password: "secret"}
	client, _ := newTestClient(t, fake)

	if err := client.Login(context.Background(), "Uploader", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	path := writeTestFile(t)
	err := client.Upload(context.Background(), path, "Sunset (img001).jpg", "=={{int:filedesc}}==", "first upload", false)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if fake.lastName != "Sunset (img001).jpg" {
		t.Errorf("Wrong target page name: %s", fake.lastName)
	}
	if fake.lastText != "=={{int:filedesc}}==" {
		t.Errorf("Wrong page text: %s", fake.lastText)
	}
	if fake.lastComment != "first upload" {
		t.Errorf("Wrong edit comment: %s", fake.lastComment)
	}
}

// TestUpload_Exists verifies the naming-conflict outcome
func TestUpload_Exists(t *testing.T) {
	fake := &fakeWiki{password: "secret", existing: map[string]bool{"Sunset.jpg": true}}
	client, _ := newTestClient(t, fake)

	if err := client.Login(context.Background(), "Uploader", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	path := writeTestFile(t)

	err := client.Upload(context.Background(), path, "Sunset.jpg", "text", "comment", false)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("Expected ErrFileExists, got %v", err)
	}

	// With overwrite allowed the same upload succeeds.
	if err := client.Upload(context.Background(), path, "Sunset.jpg", "text", "comment", true); err != nil {
		t.Fatalf("Overwriting upload failed: %v", err)
	}
}

// TestUpload_NotLoggedIn verifies uploads require an established session
func TestUpload_NotLoggedIn(t *testing.T) {
	client, _ := newTestClient(t, &fakeWiki{})

	err := client.Upload(context.Background(), writeTestFile(t), "Sunset.jpg", "text", "comment", false)
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Expected ErrNotLoggedIn, got %v", err)
	}
}

// TestUpload_APIError verifies structured API errors are surfaced
func TestUpload_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(rw, `{"query":{"tokens":{"logintoken":"t","csrftoken":"t"}}}`)
			return
		}
		_ = r.ParseMultipartForm(32 << 20)
		if r.FormValue("action") == "login" {
			fmt.Fprint(rw, `{"login":{"result":"Success"}}`)
			return
		}
		fmt.Fprint(rw, `{"error":{"code":"ratelimited","info":"You've exceeded your rate limit."}}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "dtMediaWiki test")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Login(context.Background(), "Uploader", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	err = client.Upload(context.Background(), writeTestFile(t), "Sunset.jpg", "text", "comment", false)
	if err == nil {
		t.Fatal("Expected upload to fail")
	}
	if errors.Is(err, ErrFileExists) {
		t.Error("API error must not be reported as a naming conflict")
	}
}
