// Command flowcheck walks one booking through a running server: select a
// slot, pay, register. It reports the outcome and latency of every step.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type StepResult struct {
	Step         string        `json:"step"`
	Method       string        `json:"method"`
	Endpoint     string        `json:"endpoint"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
	Notices      []string      `json:"notices,omitempty"`
	Redirect     string        `json:"redirect,omitempty"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

type FlowCheck struct {
	BaseURL string
	Client  *http.Client
	Results []StepResult
}

type envelope struct {
	Message string `json:"message"`
	Notices []struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	} `json:"notices"`
	Redirect *struct {
		To string `json:"to"`
	} `json:"redirect"`
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080/api/v1", "booking API base URL")
	venue := flag.String("venue", "venue-a", "venue id")
	slot := flag.String("slot", "", "slot id; the first available slot when empty")
	players := flag.Int("players", 10, "players per team")
	method := flag.String("method", "online-banking", "payment method")
	redisAddr := flag.String("redis", "localhost:6379", "Redis address; empty to skip the check")
	report := flag.String("report", "", "write JSON results to this file")
	flag.Parse()

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("❌ cookie jar: %v", err)
	}
	check := &FlowCheck{
		BaseURL: strings.TrimRight(*baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}

	fmt.Println("🧪 Starting booking flow check...")
	fmt.Println("=================================")

	if *redisAddr != "" {
		if err := pingRedis(*redisAddr); err != nil {
			fmt.Printf("⚠️  Redis not reachable (%v); the server is likely on in-memory sessions\n", err)
		} else {
			fmt.Println("✅ Redis connection: OK")
		}
	}

	slotID := *slot
	if slotID == "" {
		slotID, err = check.firstAvailable(*venue)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
	fmt.Printf("🎯 Booking %s at %s\n", slotID, *venue)

	teamName := "Flowcheck " + uuid.NewString()[:8]
	steps := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"View slots", http.MethodGet, "/venues/" + *venue + "/slots", nil},
		{"Select slot", http.MethodPost, "/venues/" + *venue + "/slots/" + slotID + "/select", nil},
		{"Proceed", http.MethodPost, "/venues/" + *venue + "/proceed", nil},
		{"Payment summary", http.MethodGet, "/payment", nil},
		{"Choose method", http.MethodPut, "/payment/method", map[string]string{"method": *method}},
		{"Confirm payment", http.MethodPost, "/payment/confirm", nil},
		{"Registration form", http.MethodGet, "/registration", nil},
		{"Submit registration", http.MethodPost, "/registration", registrationBody(teamName, *players)},
		{"Venue after booking", http.MethodGet, "/venues/" + *venue + "/slots", nil},
	}

	for _, step := range steps {
		fmt.Printf("\n🔍 %s\n", step.name)
		result := check.run(step.name, step.method, step.path, step.body)
		check.Results = append(check.Results, result)
		if !result.Success {
			break
		}
	}

	check.generateReport(*report)
}

func pingRedis(addr string) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

func registrationBody(team string, n int) map[string]interface{} {
	players := make([]map[string]string, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, map[string]string{
			"name":      fmt.Sprintf("%s Player %d", team, i),
			"id_number": fmt.Sprintf("FC%06d", i),
		})
	}
	return map[string]interface{}{"team_name": team, "players": players}
}

func (f *FlowCheck) firstAvailable(venue string) (string, error) {
	var body struct {
		Data struct {
			Slots []struct {
				ID         string `json:"id"`
				Selectable bool   `json:"selectable"`
			} `json:"slots"`
		} `json:"data"`
	}
	resp, err := f.Client.Get(f.BaseURL + "/venues/" + venue + "/slots")
	if err != nil {
		return "", fmt.Errorf("failed to load slots: %w", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode slots: %w", err)
	}
	for _, s := range body.Data.Slots {
		if s.Selectable {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("no available slot at %s", venue)
}

func (f *FlowCheck) run(name, method, path string, payload interface{}) StepResult {
	result := StepResult{Step: name, Method: method, Endpoint: path}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, f.BaseURL+path, body)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := f.Client.Do(req)
	result.ResponseTime = time.Since(start)
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("   ❌ %v\n", err)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		for _, n := range env.Notices {
			result.Notices = append(result.Notices, n.Level+": "+n.Message)
		}
		if env.Redirect != nil {
			result.Redirect = env.Redirect.To
		}
		if !result.Success {
			result.Error = env.Message
		}
	}

	statusIcon := "✅"
	if !result.Success {
		statusIcon = "❌"
	}
	fmt.Printf("   %s HTTP %d %v\n", statusIcon, result.StatusCode, result.ResponseTime)
	for _, n := range result.Notices {
		fmt.Printf("   💬 %s\n", n)
	}
	if result.Redirect != "" {
		fmt.Printf("   ➡️  %s\n", result.Redirect)
	}

	return result
}

func (f *FlowCheck) generateReport(path string) {
	fmt.Println("\n📊 FLOW REPORT")
	fmt.Println("==============")

	successful := 0
	total := time.Duration(0)
	for _, r := range f.Results {
		if r.Success {
			successful++
		}
		total += r.ResponseTime
	}

	fmt.Printf("Steps run: %d\n", len(f.Results))
	fmt.Printf("Successful: %d\n", successful)
	fmt.Printf("Total time: %v\n", total)

	if path != "" {
		reportData, err := json.MarshalIndent(map[string]interface{}{
			"summary": map[string]interface{}{
				"steps":      len(f.Results),
				"successful": successful,
				"total_time": total.String(),
			},
			"results": f.Results,
		}, "", "  ")
		if err == nil {
			err = os.WriteFile(path, reportData, 0o644)
		}
		if err != nil {
			fmt.Printf("⚠️  Failed to write report: %v\n", err)
		} else {
			fmt.Printf("\n💾 Detailed results saved to %s\n", path)
		}
	}

	if successful != len(f.Results) {
		os.Exit(1)
	}
	fmt.Println("\n🎉 Booking flow check complete!")
}
