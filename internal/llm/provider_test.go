package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestFunc_ForwardsRequest(t *testing.T) {
	var seen string
	var c Client = Func(func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		seen = req.Model
		return openai.ChatCompletionResponse{}, nil
	})
	if _, err := c.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "m1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "m1" {
		t.Fatalf("model not forwarded: %q", seen)
	}
}

func TestNewOpenAI_ListsModelsFromBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"brd-model","object":"model"}]}`))
	}))
	defer srv.Close()

	var p ModelLister = NewOpenAI(srv.URL+"/v1", "k", srv.Client())
	list, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(list.Models) != 1 || list.Models[0].ID != "brd-model" {
		t.Fatalf("unexpected models: %+v", list.Models)
	}
}
