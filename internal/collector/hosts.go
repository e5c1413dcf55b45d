package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"HirschPicks/internal/telemetry"
)

// errRejected marks a 4xx answer to one request (unknown or delisted symbol, bad params).
// The host itself is healthy, so breakers do not count it.
var errRejected = errors.New("request rejected")

// hostPool issues GETs against an ordered list of base URLs; the first success wins.
// Each host has its own breaker, tripped only by transport errors, 429 and 5xx.
type hostPool struct {
	provider string
	client   *resty.Client
	hosts    []string
	breakers map[string]*gobreaker.CircuitBreaker
	limiter  *rate.Limiter
}

func newHostPool(provider string, client *resty.Client, hosts []string, limiter *rate.Limiter) *hostPool {
	p := &hostPool{
		provider: provider,
		client:   client,
		breakers: make(map[string]*gobreaker.CircuitBreaker, len(hosts)),
		limiter:  limiter,
	}
	for _, h := range hosts {
		h = strings.TrimSuffix(strings.TrimSpace(h), "/")
		if h == "" {
			continue
		}
		if _, dup := p.breakers[h]; dup {
			continue
		}
		p.hosts = append(p.hosts, h)
		p.breakers[h] = newBreaker(h)
	}
	return p
}

func newBreaker(host string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     host,
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("host", name).Warnf("provider breaker %s -> %s", from, to)
		},
	})
}

// transient reports whether a response is worth one retry: transport errors, throttling and 5xx.
func transient(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
}

// get issues path against each host in order and returns the first successful body.
func (p *hostPool) get(ctx context.Context, endpoint, path string, params map[string]string) ([]byte, error) {
	if len(p.hosts) == 0 {
		return nil, fmt.Errorf("%w: %s: no hosts configured", ErrUnavailable, p.provider)
	}
	var lastErr error
	for _, host := range p.hosts {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
		}
		start := time.Now()
		out, err := p.breakers[host].Execute(func() (interface{}, error) {
			resp, err := p.client.R().
				SetContext(ctx).
				SetQueryParams(params).
				Get(host + path)
			if err != nil {
				return nil, err
			}
			if resp.IsSuccess() {
				return resp.Body(), nil
			}
			if code := resp.StatusCode(); code >= 400 && code < 500 && code != http.StatusTooManyRequests {
				return nil, fmt.Errorf("%w: status %d from %s", errRejected, code, host)
			}
			return nil, fmt.Errorf("status %d from %s", resp.StatusCode(), host)
		})
		telemetry.ProviderLatency.WithLabelValues(p.provider, endpoint).Observe(time.Since(start).Seconds())
		if err == nil {
			telemetry.ProviderRequests.WithLabelValues(p.provider, endpoint, "ok").Inc()
			return out.([]byte), nil
		}
		telemetry.ProviderRequests.WithLabelValues(p.provider, endpoint, "error").Inc()
		log.WithField("host", host).Debugf("%s %s failed: %v", p.provider, endpoint, err)
		lastErr = err
	}
	return nil, fmt.Errorf("%w: all %s hosts failed: %v", ErrUnavailable, p.provider, lastErr)
}
