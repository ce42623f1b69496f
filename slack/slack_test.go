package slack_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"mealmind/slack"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

type mockDoer struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestNewClient(t *testing.T) {
	client := slack.NewClient("http://slack.com/webhook", &mockDoer{})
	must.NotNil(t, client, "expected non-nil client")
}

func TestPostMessage(t *testing.T) {
	tests := []struct {
		name    string
		doFunc  func(req *http.Request) (*http.Response, error)
		wantErr error
	}{
		{
			name: "success",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString("ok"))}, nil
			},
			wantErr: nil,
		},
		{
			name: "failure status",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusBadRequest, Status: "400 Bad Request", Body: io.NopCloser(bytes.NewBufferString("bad request"))}, nil
			},
			wantErr: fmt.Errorf("failed to post message: 400 Bad Request"),
		},
		{
			name: "do error",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("network error")
			},
			wantErr: fmt.Errorf("network error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := slack.NewClient("http://example.com/webhook", &mockDoer{doFunc: tt.doFunc})
			err := client.PostMessage(context.Background(), "#meal-advisor", "Budget tolerance exceeded")
			should.Equal(t, tt.wantErr, err)
		})
	}
}

func TestPostMessageTruncatesLongMessages(t *testing.T) {
	var posted struct {
		Channel string `json:"channel"`
		Text    string `json:"text"`
	}

	client := slack.NewClient("http://example.com/webhook", &mockDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			must.NoError(t, err)
			must.NoError(t, json.Unmarshal(body, &posted))
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString("ok"))}, nil
		},
	})

	err := client.PostMessage(context.Background(), "#meal-advisor", strings.Repeat("x", 5000))
	must.NoError(t, err)
	should.Equal(t, "#meal-advisor", posted.Channel)
	should.LessOrEqual(t, len(posted.Text), 4000)
	should.True(t, strings.HasSuffix(posted.Text, "..."))
}
