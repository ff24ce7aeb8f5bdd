package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type loadConfig struct {
	baseURL         string
	concurrentUsers int
	durationSeconds int
	token           string
}

type loadResult struct {
	totalRequests   int64
	failedRequests  int64
	checkoutsBegun  int64
	submissions     int64
	succeeded       int64
	declined        int64
	expired         int64
	responseTimes   []time.Duration
	responseTimesMu sync.Mutex
}

var courseIDs = []string{"go-101", "go-201", "go-301", "k8s-101", "sql-201", "ts-101"}

func main() {
	cfg := &loadConfig{}
	flag.StringVar(&cfg.baseURL, "base-url", "http://localhost:8080", "Service base URL")
	flag.IntVar(&cfg.concurrentUsers, "users", 50, "Concurrent simulated users")
	flag.IntVar(&cfg.durationSeconds, "duration", 60, "Test duration in seconds")
	flag.StringVar(&cfg.token, "token", "", "Bearer token used for authenticated calls")
	flag.Parse()

	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        500,
			MaxIdleConnsPerHost: 100,
		},
	}

	result := &loadResult{}
	deadline := time.Now().Add(time.Duration(cfg.durationSeconds) * time.Second)

	fmt.Printf("Running checkout flow load test: %d users for %ds against %s\n",
		cfg.concurrentUsers, cfg.durationSeconds, cfg.baseURL)

	var wg sync.WaitGroup
	for i := 0; i < cfg.concurrentUsers; i++ {
		wg.Add(1)
		go func(userIdx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(userIdx)))
			for time.Now().Before(deadline) {
				runCheckoutFlow(client, cfg, result, rng)
			}
		}(i)
	}
	wg.Wait()

	printReport(result, cfg)
}

func runCheckoutFlow(client *http.Client, cfg *loadConfig, result *loadResult, rng *rand.Rand) {
	// Fill the cart with one to three courses.
	count := 1 + rng.Intn(3)
	for i := 0; i < count; i++ {
		body := map[string]string{"course_id": courseIDs[rng.Intn(len(courseIDs))]}
		doRequest(client, cfg, result, http.MethodPost, "/api/v1/cart/items", body)
	}

	status := doRequest(client, cfg, result, http.MethodPost, "/api/v1/checkout", nil)
	if status != http.StatusOK {
		return
	}
	atomic.AddInt64(&result.checkoutsBegun, 1)

	// A slice of users abandons between checkout entry and submission.
	if rng.Intn(10) == 0 {
		doRequest(client, cfg, result, http.MethodDelete, "/api/v1/cart", nil)
		return
	}

	atomic.AddInt64(&result.submissions, 1)
	status = doRequest(client, cfg, result, http.MethodPost, "/api/v1/checkout/submit", nil)
	switch status {
	case http.StatusOK:
		atomic.AddInt64(&result.succeeded, 1)
	case http.StatusPaymentRequired:
		atomic.AddInt64(&result.declined, 1)
	case http.StatusConflict:
		atomic.AddInt64(&result.expired, 1)
	}
}

func doRequest(client *http.Client, cfg *loadConfig, result *loadResult, method, path string, body interface{}) int {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, cfg.baseURL+path, reader)
	if err != nil {
		atomic.AddInt64(&result.failedRequests, 1)
		return 0
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cfg.token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)

	atomic.AddInt64(&result.totalRequests, 1)
	result.responseTimesMu.Lock()
	result.responseTimes = append(result.responseTimes, elapsed)
	result.responseTimesMu.Unlock()

	if err != nil {
		atomic.AddInt64(&result.failedRequests, 1)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		atomic.AddInt64(&result.failedRequests, 1)
	}
	return resp.StatusCode
}

func printReport(result *loadResult, cfg *loadConfig) {
	times := result.responseTimes
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	percentile := func(p float64) time.Duration {
		if len(times) == 0 {
			return 0
		}
		idx := int(float64(len(times)) * p)
		if idx >= len(times) {
			idx = len(times) - 1
		}
		return times[idx]
	}

	fmt.Println("\n=== Checkout Flow Load Test Report ===")
	fmt.Printf("Total requests:     %d\n", result.totalRequests)
	fmt.Printf("Failed requests:    %d\n", result.failedRequests)
	fmt.Printf("Checkouts begun:    %d\n", result.checkoutsBegun)
	fmt.Printf("Submissions:        %d\n", result.submissions)
	fmt.Printf("  succeeded:        %d\n", result.succeeded)
	fmt.Printf("  declined:         %d\n", result.declined)
	fmt.Printf("  conflict/expired: %d\n", result.expired)
	fmt.Printf("Throughput:         %.1f req/s\n",
		float64(result.totalRequests)/float64(cfg.durationSeconds))
	fmt.Printf("p50 latency:        %v\n", percentile(0.50))
	fmt.Printf("p95 latency:        %v\n", percentile(0.95))
	fmt.Printf("p99 latency:        %v\n", percentile(0.99))
}
