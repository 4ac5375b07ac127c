// Package bottest поднимает поддельный Telegram Bot API для тестов контроллеров.
package bottest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/require"
)

const token = "123:test"

// Call один запрос бота к API
type Call struct {
	Method      string
	ChatID      int64
	Text        string
	ReplyMarkup string
	Files       map[string][]byte
}

// Server записывает все запросы и отвечает успехом
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	calls []Call
}

// New запускает сервер и бота, направленного на него
func New(t testing.TB) (*Server, *bot.Bot) {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	b, err := bot.New(token, bot.WithServerURL(s.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return s, b
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: path.Base(r.URL.Path), Files: map[string][]byte{}}

	if err := r.ParseMultipartForm(10 << 20); err == nil {
		call.ChatID, _ = strconv.ParseInt(r.FormValue("chat_id"), 10, 64)
		call.Text = r.FormValue("text")
		call.ReplyMarkup = r.FormValue("reply_markup")
		for field, headers := range r.MultipartForm.File {
			f, err := headers[0].Open()
			if err != nil {
				continue
			}
			data, _ := io.ReadAll(f)
			_ = f.Close()
			call.Files[field] = data
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch call.Method {
	case "sendMessage", "sendPhoto":
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":`+
			strconv.FormatInt(call.ChatID, 10)+`,"type":"private"}}}`)
	default:
		_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
	}
}

// Calls возвращает копию всех запросов в порядке поступления
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo возвращает запросы к одному методу API
func (s *Server) CallsTo(method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
