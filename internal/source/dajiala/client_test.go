package dajiala

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{
		BaseURL:      server.URL,
		Key:          "test-key",
		PageSize:     5,
		ListingPrice: 0.06,
		ContentPrice: 0.04,
	}, testLogger())
}

func TestFetchListing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, listingEndpoint, r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "BIZ123", r.URL.Query().Get("biz"))
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))

		w.Write([]byte(`{
			"code": 0, "msg": "ok",
			"total_num": 7, "total_page": 2,
			"cost_money": 0.05, "remain_money": 12.5,
			"data": [
				{"title": "一", "url": "https://mp.weixin.qq.com/s/a", "cover_url": "c1", "post_time_str": "2024-01-02 10:00:00", "send_to_fans_num": 100, "appmsgid": 11},
				{"title": "二", "url": "https://mp.weixin.qq.com/s/b", "post_time_str": "2024-01-01 09:00:00"}
			]
		}`))
	})

	result, err := client.FetchListing(context.Background(), "BIZ123", 0)

	require.NoError(t, err)
	assert.Equal(t, 7, result.TotalNum)
	assert.Equal(t, 2, result.TotalPage)
	assert.Equal(t, 0.05, result.Cost)
	assert.Equal(t, 12.5, result.RemainMoney)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "一", result.Items[0].Title)
	assert.Equal(t, int64(11), result.Items[0].AppMsgID)
}

func TestFetchListingDefaultPriceWhenEnvelopeOmitsCost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 0, "msg": "ok", "data": []}`))
	})

	result, err := client.FetchListing(context.Background(), "BIZ123", 0)

	require.NoError(t, err)
	assert.Equal(t, 0.06, result.Cost)
}

func TestFetchListingUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 101, "msg": "key invalid"}`))
	})

	_, err := client.FetchListing(context.Background(), "BIZ123", 1)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 101, upstream.Code)
	assert.Equal(t, "key invalid", upstream.Message)
	assert.False(t, errors.Is(err, ErrRestricted))
}

func TestFetchListingDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 0, "msg": "ok", "data": {"not": "an array"}}`))
	})

	_, err := client.FetchListing(context.Background(), "BIZ123", 0)

	var decode *DecodeError
	require.ErrorAs(t, err, &decode)
}

func TestFetchListingTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(Config{BaseURL: server.URL, Key: "k", PageSize: 5}, testLogger())
	server.Close()

	_, err := client.FetchListing(context.Background(), "BIZ123", 0)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
}

func TestFetchContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, contentEndpoint, r.URL.Path)
		assert.Equal(t, "https://mp.weixin.qq.com/s/a", r.URL.Query().Get("url"))
		w.Write([]byte(`{"code": 0, "msg": "ok", "cost_money": 0.04, "data": {"html": "<p>正文</p>"}}`))
	})

	result, err := client.FetchContent(context.Background(), "https://mp.weixin.qq.com/s/a")

	require.NoError(t, err)
	assert.Equal(t, "<p>正文</p>", result.Content)
	assert.Equal(t, 0.04, result.Cost)
}

func TestFetchContentRestricted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 1, "msg": "内容限制访问"}`))
	})

	result, err := client.FetchContent(context.Background(), "https://mp.weixin.qq.com/s/u")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRestricted))
	assert.Equal(t, "restricted", FetchErrorCode(err))
	// the upstream bills the rejected call
	require.NotNil(t, result)
	assert.Equal(t, 0.04, result.Cost)
	assert.Empty(t, result.Content)
}

func TestFetchContentEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 0, "msg": "ok", "data": {"html": ""}}`))
	})

	result, err := client.FetchContent(context.Background(), "https://mp.weixin.qq.com/s/e")

	assert.True(t, errors.Is(err, ErrEmptyContent))
	assert.Equal(t, "empty_content", FetchErrorCode(err))
	require.NotNil(t, result)
	assert.Equal(t, 0.04, result.Cost)
}

func TestFetchDetailFallsBackToContentField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, detailEndpoint, r.URL.Path)
		w.Write([]byte(`{"code": 0, "msg": "ok", "data": {"content": "正文文本", "author": "高瞻"}}`))
	})

	result, err := client.FetchDetail(context.Background(), "https://mp.weixin.qq.com/s/a")

	require.NoError(t, err)
	assert.Equal(t, "正文文本", result.Content)
	assert.Equal(t, "高瞻", result.Author)
}

func TestBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		w.Write([]byte(`{"code": 0, "msg": "ok", "cost_money": 0.03, "remain_money": 3.2, "data": []}`))
	})

	result, err := client.Balance(context.Background(), "BIZ123")

	require.NoError(t, err)
	assert.Equal(t, 3.2, result.RemainMoney)
	assert.Equal(t, 0.03, result.Cost)
}

func TestFetchErrorCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"restricted", &UpstreamError{Code: 1, Message: "内容限制访问"}, "restricted"},
		{"upstream", &UpstreamError{Code: 2, Message: "参数错误"}, "参数错误"},
		{"empty", ErrEmptyContent, "empty_content"},
		{"transport", &TransportError{Err: errors.New("connection refused")}, "transport: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FetchErrorCode(tt.err))
		})
	}
}
