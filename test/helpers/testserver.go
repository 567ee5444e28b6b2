package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"munext_backend/internal/app"
	"munext_backend/internal/config"
	"munext_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TestServer поднимает httptest-сервер поверх транзакции.
// Все запросы теста идут через нее, в конце теста транзакция
// откатывается, и БД остается чистой.
type TestServer struct {
	Server     *httptest.Server
	DB         *gorm.DB // транзакция теста
	StorageDir string   // корень файлового хранилища теста
}

func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	db := ConnectTestDB(t)
	cfg := config.GetConfig()
	storageDir := t.TempDir()
	cfg.Storage.BasePath = storageDir

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("Не удалось открыть транзакцию: %v", tx.Error)
	}

	router := app.SetupRouter(cfg, db)

	// Подкладываем транзакцию в context запроса, DBMiddleware
	// подхватит ее вместо пула.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextkeys.DBContextKey, tx)
		router.ServeHTTP(w, r.WithContext(ctx))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		tx.Rollback()
	})

	return &TestServer{
		Server:     server,
		DB:         tx,
		StorageDir: storageDir,
	}
}

// SendRequest шлет JSON-запрос и возвращает ответ вместе с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// SendMultipart шлет multipart/form-data с полями формы и опциональным файлом
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField, fileName string, fileContent []byte) (*http.Response, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Ошибка записи поля формы %s: %v", key, err)
		}
	}
	if fileField != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, fileName))
		if contentType := mime.TypeByExtension(filepath.Ext(fileName)); contentType != "" {
			header.Set("Content-Type", contentType)
		} else {
			header.Set("Content-Type", "application/octet-stream")
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("Ошибка создания файла в форме: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("Ошибка записи файла в форму: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Ошибка закрытия multipart writer: %v", err)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}

	return res, string(resBodyBytes)
}
