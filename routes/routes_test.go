package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/config"
	"github.com/openbingo/board-server/models"
	"github.com/openbingo/board-server/routes"
	"github.com/openbingo/board-server/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := services.NewEngine(&config.Config{
		Port:     "0",
		BoardPin: "1975",
		AuthTTL:  30 * time.Minute,
	})
	r := gin.New()
	routes.SetupRoutes(r, e)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Board-Token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	decoded := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func unlockBoard(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/auth/board/unlock", "", gin.H{"pin": "1975"})
	if w.Code != http.StatusOK {
		t.Fatalf("unlock status %d: %s", w.Code, w.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in unlock response")
	}
	return token
}

func TestGetStateIsPublic(t *testing.T) {
	r := newTestRouter()
	w, body := doJSON(t, r, http.MethodGet, "/api/state", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if body["remaining"] != float64(75) || body["gameType"] != "traditional" {
		t.Fatalf("unexpected snapshot: %v", body)
	}
	if body["boardAuthValid"] != false {
		t.Fatalf("fresh board should not report valid auth: %v", body)
	}
}

func TestDrawRequiresToken(t *testing.T) {
	r := newTestRouter()
	w, body := doJSON(t, r, http.MethodPost, "/draw", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if body["error"] != models.ErrAuthRequired.Error() {
		t.Fatalf("error %v", body["error"])
	}

	token := unlockBoard(t, r)
	w, body = doJSON(t, r, http.MethodPost, "/draw", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if body["remaining"] != float64(74) {
		t.Fatalf("remaining %v after draw", body["remaining"])
	}
}

func TestUnlockRejectsWrongPin(t *testing.T) {
	r := newTestRouter()
	w, _ := doJSON(t, r, http.MethodPost, "/auth/board/unlock", "", gin.H{"pin": "0000"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestCallingStyleConflictStatus(t *testing.T) {
	r := newTestRouter()
	token := unlockBoard(t, r)
	if w, _ := doJSON(t, r, http.MethodPost, "/draw", token, nil); w.Code != http.StatusOK {
		t.Fatalf("draw status %d", w.Code)
	}
	w, _ := doJSON(t, r, http.MethodPost, "/calling-style", token, gin.H{"callingStyle": "manual"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409", w.Code)
	}
}

func TestCardJoinFlow(t *testing.T) {
	r := newTestRouter()

	_, state := doJSON(t, r, http.MethodGet, "/api/state", "", nil)
	seed := fmt.Sprintf("%.0f", state["boardSeed"].(float64))

	numbers := make([]interface{}, 25)
	for i := 0; i < 25; i++ {
		if i == 12 {
			numbers[i] = nil
		} else {
			numbers[i] = i + 1
		}
	}

	w, body := doJSON(t, r, http.MethodPost, "/card/join", "", gin.H{
		"pin": seed, "numbers": numbers, "cardId": "card-a",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("join status %d: %s", w.Code, w.Body.String())
	}
	if body["cardId"] != "card-a" || body["winner"] != false {
		t.Fatalf("join body: %v", body)
	}

	w, body = doJSON(t, r, http.MethodGet, "/api/card-state?cardId=card-a", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("card-state status %d", w.Code)
	}
	marks, _ := body["marks"].([]interface{})
	if len(marks) != 25 || marks[12] != true || marks[0] != false {
		t.Fatalf("marks: %v", marks)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/card/mark", "", gin.H{
		"cardId": "card-a", "cellIndex": 12, "marked": false,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("free cell mark status %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/card/leave", "", gin.H{"cardId": "card-a"})
	if w.Code != http.StatusOK {
		t.Fatalf("leave status %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/api/card-state?cardId=card-a", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("card-state after leave status %d, want 404", w.Code)
	}
}

func TestJoinRejectsWrongSeed(t *testing.T) {
	r := newTestRouter()
	numbers := make([]interface{}, 25)
	for i := range numbers {
		numbers[i] = i + 1
	}
	w, _ := doJSON(t, r, http.MethodPost, "/card/join", "", gin.H{"pin": "nope", "numbers": numbers})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestPinChangeAndRelock(t *testing.T) {
	r := newTestRouter()
	token := unlockBoard(t, r)

	w, _ := doJSON(t, r, http.MethodPost, "/board/pin", token, gin.H{"currentPin": "1975", "nextPin": "8642"})
	if w.Code != http.StatusOK {
		t.Fatalf("pin change status %d: %s", w.Code, w.Body.String())
	}
	w, _ = doJSON(t, r, http.MethodPost, "/auth/board/lock", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("lock status %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodPost, "/draw", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("draw after lock status %d, want 401", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/auth/board/unlock", "", gin.H{"pin": "1975"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("old pin status %d, want 401", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/auth/board/unlock", "", gin.H{"pin": "8642"})
	if w.Code != http.StatusOK {
		t.Fatalf("new pin status %d", w.Code)
	}
}

func TestBrightnessClamps(t *testing.T) {
	r := newTestRouter()
	token := unlockBoard(t, r)
	if w, _ := doJSON(t, r, http.MethodPost, "/brightness?value=900", token, nil); w.Code != http.StatusOK {
		t.Fatalf("brightness status %d", w.Code)
	}
	_, state := doJSON(t, r, http.MethodGet, "/api/state", "", nil)
	if state["brightness"] != float64(255) {
		t.Fatalf("brightness %v, want 255", state["brightness"])
	}
	// Garbage values leave brightness untouched.
	doJSON(t, r, http.MethodPost, "/brightness?value=oops", token, nil)
	_, state = doJSON(t, r, http.MethodGet, "/api/state", "", nil)
	if state["brightness"] != float64(255) {
		t.Fatalf("brightness %v after bad value", state["brightness"])
	}
}
