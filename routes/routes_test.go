package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"askcaira/backend/ai"
	"askcaira/backend/cache"
	"askcaira/backend/config"
	"askcaira/backend/database"
	"askcaira/backend/logger"
	"askcaira/backend/services"
	"askcaira/backend/utils"
)

const secret = "routes-test-secret"

func fakeModel() ai.GeneratorFunc {
	return func(_ context.Context, p string) (string, error) {
		switch {
		case strings.Contains(p, "recommend 3-5 different chart types"):
			return `{"recommendations":[{"type":"line","xAxis":"month","yAxis":"revenue","title":"Revenue","insight":"grows"}]}`, nil
		case strings.Contains(p, "Create interactive HTML charts"):
			return "```html\n<html>viz</html>\n```", nil
		}
		return "Revenue grows every month.", nil
	}
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	store := database.NewMemoryStore()
	orch := ai.NewOrchestrator(fakeModel(), log)
	fc := cache.NopFileCache{}
	cfg := config.Config{JWTSecret: secret, MaxUploadBytes: 10 * 1024 * 1024}

	r := gin.New()
	Register(r, cfg, Services{
		Upload: services.NewUploadService(store, orch, fc, log, cfg.MaxUploadBytes),
		Chat:   services.NewChatService(store, orch, fc, log),
		Files:  services.NewFileService(store, fc, log),
	}, log)
	return r
}

func token(t *testing.T, uid string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(secret, "", uid, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func do(t *testing.T, r *gin.Engine, req *http.Request, uid string) *httptest.ResponseRecorder {
	t.Helper()
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, uid))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, name, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write([]byte(content))
	w.WriteField("mode", "visualize")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, v any) *http.Request {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

const csvBody = "month,revenue\nJan,100\nFeb,120\nMar,150\n"

func TestHealthzIsPublic(t *testing.T) {
	rec := do(t, newServer(t), httptest.NewRequest(http.MethodGet, "/healthz", nil), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	r := newServer(t)
	for _, path := range []string{"/api/files", "/api/chat/messages?fileId=x"} {
		rec := do(t, r, httptest.NewRequest(http.MethodGet, path, nil), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: got=%d want=%d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestListFilesEmpty(t *testing.T) {
	rec := do(t, newServer(t), httptest.NewRequest(http.MethodGet, "/api/files", nil), "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"files":[]`) {
		t.Fatalf("body: got=%s", rec.Body.String())
	}
	if decode(t, rec)["success"] != true {
		t.Fatalf("success flag missing: %s", rec.Body.String())
	}
}

func TestUploadRejectsTypoExtension(t *testing.T) {
	rec := do(t, newServer(t), uploadRequest(t, "data.exlx", csvBody), "u1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	body := decode(t, rec)
	if msg, _ := body["error"].(string); !strings.Contains(msg, ".xlsx") {
		t.Fatalf("error should suggest .xlsx: %q", msg)
	}
	if _, ok := body["debug"]; !ok {
		t.Fatalf("debug missing: %v", body)
	}
}

func TestUploadParseFailure(t *testing.T) {
	rec := do(t, newServer(t), uploadRequest(t, "broken.csv", "a,b\n1,2,3\n"), "u1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	dbg, _ := decode(t, rec)["debug"].(map[string]any)
	if dbg["fileName"] != "broken.csv" {
		t.Fatalf("debug: got=%v", dbg)
	}
}

func TestUploadMissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := do(t, newServer(t), req, "u1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadChatAndDeleteFlow(t *testing.T) {
	r := newServer(t)

	rec := do(t, r, uploadRequest(t, "revenue.csv", csvBody), "owner")
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	file, _ := decode(t, rec)["file"].(map[string]any)
	fileID, _ := file["id"].(string)
	if fileID == "" || file["generatedHTML"] != "<html>viz</html>" || file["rowCount"] != float64(3) {
		t.Fatalf("file: got=%v", file)
	}

	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/api/chat/messages?fileId="+fileID, nil), "owner")
	if rec.Code != http.StatusOK {
		t.Fatalf("messages status: got=%d", rec.Code)
	}
	msgs, _ := decode(t, rec)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages: got=%d want=2", len(msgs))
	}

	rec = do(t, r, jsonRequest(t, http.MethodPost, "/api/chat", map[string]any{
		"message": "how did revenue change?", "fileId": fileID,
	}), "owner")
	if rec.Code != http.StatusOK {
		t.Fatalf("chat status: got=%d", rec.Code)
	}
	reply := decode(t, rec)
	if reply["response"] != "Revenue grows every month." || reply["hasVisualization"] != false || reply["chatId"] == "" {
		t.Fatalf("reply: got=%v", reply)
	}
	if _, ok := reply["extractedHTML"]; !ok {
		t.Fatalf("extractedHTML key missing: %v", reply)
	}

	rec = do(t, r, httptest.NewRequest(http.MethodDelete, "/api/files?id="+fileID, nil), "intruder")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("intruder delete: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/api/files", nil), "owner")
	files, _ := decode(t, rec)["files"].([]any)
	if len(files) != 1 {
		t.Fatalf("owner files after intruder delete: got=%d want=1", len(files))
	}

	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/api/me", nil), "owner")
	if me := decode(t, rec); me["userId"] != "owner" || me["fileCount"] != float64(1) {
		t.Fatalf("me: got=%v", me)
	}

	rec = do(t, r, httptest.NewRequest(http.MethodDelete, "/api/files?id="+fileID, nil), "owner")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: got=%d", rec.Code)
	}
	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/api/files", nil), "owner")
	if !strings.Contains(rec.Body.String(), `"files":[]`) {
		t.Fatalf("files after delete: %s", rec.Body.String())
	}
}

func TestChatValidation(t *testing.T) {
	r := newServer(t)
	rec := do(t, r, jsonRequest(t, http.MethodPost, "/api/chat", map[string]any{"message": ""}), "u1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty message: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}

	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/api/chat/messages", nil), "u1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fileId: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/api/chat/messages?fileId=none", nil), "u1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown file: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	if decode(t, rec)["success"] != false {
		t.Fatalf("success flag: %s", rec.Body.String())
	}

	rec = do(t, r, httptest.NewRequest(http.MethodDelete, "/api/files", nil), "u1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delete without id: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestGeneralChat(t *testing.T) {
	rec := do(t, newServer(t), jsonRequest(t, http.MethodPost, "/api/chat", map[string]any{
		"message": "hey", "mode": "general",
	}), "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if resp, _ := decode(t, rec)["response"].(string); !strings.HasPrefix(resp, "Hello!") {
		t.Fatalf("response: got=%q", resp)
	}
}
