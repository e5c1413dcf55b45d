package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"timestamp":[1700006400,1700092800,1700179200],
"indicators":{"quote":[{"open":[10,null,11],"high":[10.5,null,11.8],"low":[9.8,null,10.9],
"close":[10.2,null,11.5],"volume":[1000,null,3000]}]}}],"error":null}}`

const quoteBody = `{"quoteResponse":{"result":[
{"symbol":"abc","regularMarketPrice":11.6,"regularMarketVolume":"2,500","marketCap":{"raw":1200000000,"fmt":"1.2B"},
 "averageDailyVolume3Month":1000,"longName":"ABC Corp","fullExchangeName":"NasdaqGS"},
{"symbol":"XYZ","regularMarketPrice":"NaN","shortName":"XYZ Inc"},
{"regularMarketPrice":1}]}}`

func testFetcher(hosts ...string) *YahooFetcher {
	return NewYahooFetcher(YahooConfig{
		Hosts:             hosts,
		Timeout:           2 * time.Second,
		RetryWait:         time.Millisecond,
		RequestsPerSecond: 1000,
		Burst:             100,
	})
}

func TestYahooFetchHistory_SkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/ABC", r.URL.Path)
		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	bars, err := testFetcher(srv.URL).FetchHistory(context.Background(), "ABC", "1mo", "1d")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 10.2, bars[0].Close)
	assert.Equal(t, 11.5, bars[1].Close)
	assert.Equal(t, 3000.0, bars[1].Volume)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
}

func TestYahooFetcher_FailsOverToSecondHost(t *testing.T) {
	var primaryHits int32
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&primaryHits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer primary.Close()
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chartBody))
	}))
	defer secondary.Close()

	bars, err := testFetcher(primary.URL, secondary.URL).FetchHistory(context.Background(), "ABC", "5d", "1d")
	require.NoError(t, err)
	assert.Len(t, bars, 2)
	// one request plus one retry
	assert.Equal(t, int32(2), atomic.LoadInt32(&primaryHits))
}

func TestYahooFetcher_AllHostsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).FetchHistory(context.Background(), "ABC", "5d", "1d")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestYahooFetcher_UnknownSymbolsKeepBreakersClosed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v8/finance/chart/DEAD" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(chartBody))
	})
	primary := httptest.NewServer(handler)
	defer primary.Close()
	secondary := httptest.NewServer(handler)
	defer secondary.Close()

	f := testFetcher(primary.URL, secondary.URL)
	for i := 0; i < 8; i++ {
		_, err := f.FetchHistory(context.Background(), "DEAD", "1mo", "1d")
		require.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateClosed, f.pool.breakers[primary.URL].State())
	assert.Equal(t, gobreaker.StateClosed, f.pool.breakers[secondary.URL].State())

	bars, err := f.FetchHistory(context.Background(), "GOOD", "1mo", "1d")
	require.NoError(t, err)
	assert.Len(t, bars, 2)
}

func TestYahooFetcher_ServerErrorsTripBreaker(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := testFetcher(srv.URL)
	for i := 0; i < 5; i++ {
		_, err := f.FetchHistory(context.Background(), "ABC", "5d", "1d")
		require.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, f.pool.breakers[srv.URL].State())
	before := atomic.LoadInt32(&hits)

	_, err := f.FetchHistory(context.Background(), "ABC", "5d", "1d")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "circuit breaker is open")
	assert.Equal(t, before, atomic.LoadInt32(&hits))
}

func TestYahooFetchHistory_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).FetchHistory(context.Background(), "NOPE", "5d", "1d")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestYahooFetchQuotes_ValidatesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "ABC,XYZ", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(quoteBody))
	}))
	defer srv.Close()

	quotes, err := testFetcher(srv.URL).FetchQuotes(context.Background(), []string{"ABC", "XYZ"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	abc := quotes[0]
	assert.Equal(t, "ABC", abc.Symbol)
	require.NotNil(t, abc.Price)
	assert.Equal(t, 11.6, *abc.Price)
	require.NotNil(t, abc.Volume)
	assert.Equal(t, 2500.0, *abc.Volume)
	require.NotNil(t, abc.MarketCap)
	assert.Equal(t, 1.2e9, *abc.MarketCap)
	assert.Nil(t, abc.Open)
	assert.Equal(t, "ABC Corp", abc.CompanyName)
	assert.Equal(t, "NasdaqGS", abc.Exchange)

	xyz := quotes[1]
	assert.Nil(t, xyz.Price)
	assert.Equal(t, "XYZ Inc", xyz.CompanyName)
}

func TestYahooFetchQuotes_EmptySymbols(t *testing.T) {
	quotes, err := testFetcher("http://127.0.0.1:1").FetchQuotes(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestNumberField(t *testing.T) {
	assert.Nil(t, numberField(nil))
	assert.Nil(t, numberField("abc"))
	assert.Nil(t, numberField(""))
	assert.Nil(t, numberField(true))
	require.NotNil(t, numberField("1,234.5"))
	assert.Equal(t, 1234.5, *numberField("1,234.5"))
	assert.Equal(t, 7.0, *numberField(map[string]interface{}{"raw": 7.0}))
	assert.Equal(t, 0.0, *numberField(0.0))
}
