package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/aoc"
)

type fakeSource map[int]string

func (f fakeSource) Fetch(_ context.Context, day int) ([]byte, error) {
	s, ok := f[day]
	if !ok {
		return nil, errors.New("no such day")
	}
	return []byte(s), nil
}

func useSource(t *testing.T, src aoc.Source) {
	t.Helper()
	prev := remoteSource
	remoteSource = func() (aoc.Source, error) { return src, nil }
	t.Cleanup(func() { remoteSource = prev })
}

func post(t *testing.T, method, body string) (int, SolveResponse) {
	t.Helper()
	req := httptest.NewRequest(method, "/solve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	solve(rec, req)

	var resp SolveResponse
	if method != http.MethodOptions {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.RequestID)
	}
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	return rec.Code, resp
}

func TestSolve(t *testing.T) {
	useSource(t, fakeSource{9: "2333133121414131402\n"})

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantAnswer uint64
		wantErr    string
	}{
		{
			name:       "inline input",
			method:     http.MethodPost,
			body:       `{"day":3,"part":1,"input":"xmul(2,4)mul(3,3)"}`,
			wantStatus: http.StatusOK,
			wantAnswer: 17,
		},
		{
			name:       "bigquery input",
			method:     http.MethodPost,
			body:       `{"day":9,"part":1,"inputScope":"bigquery"}`,
			wantStatus: http.StatusOK,
			wantAnswer: 964,
		},
		{
			name:       "remote fetch failure",
			method:     http.MethodPost,
			body:       `{"day":2,"part":1,"inputScope":"bigquery"}`,
			wantStatus: http.StatusBadGateway,
			wantErr:    "fetch input",
		},
		{
			name:       "unknown puzzle",
			method:     http.MethodPost,
			body:       `{"day":25,"part":1,"input":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "unknown puzzle",
		},
		{
			name:       "strict rejects stray tokens",
			method:     http.MethodPost,
			body:       `{"day":2,"part":1,"input":"1 2 x","strict":true}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "malformed input",
		},
		{
			name:       "empty input",
			method:     http.MethodPost,
			body:       `{"day":2,"part":1}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "input must not be empty",
		},
		{
			name:       "unknown scope",
			method:     http.MethodPost,
			body:       `{"day":2,"part":1,"inputScope":"s3"}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "unknown inputScope",
		},
		{
			name:       "bad json",
			method:     http.MethodPost,
			body:       `{"day":`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid JSON",
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
			wantErr:    "method GET not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := post(t, tt.method, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantErr != "" {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, tt.wantErr)
				return
			}
			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantAnswer, resp.Answer)
		})
	}
}

func TestSolve_Preflight(t *testing.T) {
	status, _ := post(t, http.MethodOptions, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRemoteSource_RequiresEnv(t *testing.T) {
	t.Setenv("AOC_BQ_PROJECT", "")
	t.Setenv("AOC_BQ_TABLE", "")
	_, err := remoteSource()
	assert.Error(t, err)

	t.Setenv("AOC_BQ_PROJECT", "xword-x")
	t.Setenv("AOC_BQ_TABLE", "xword-x.aoc.puzzle_inputs")
	src, err := remoteSource()
	require.NoError(t, err)
	assert.NotNil(t, src)
}
