package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

var URL, _ = os.LookupEnv("API_URL")
var PORT, _ = os.LookupEnv("API_PORT")
var apiURL = fmt.Sprintf("http://%s:%s/api/v1", URL, PORT)
var returnURL = apiURL + "/checkout/return"

const (
	workers  = 10
	duration = 30 * time.Second
	testUser = "f60ae2e1-ee72-4a6a-bef2-7cde5c83782f"
)

func main() {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			start := time.Now()
			for time.Since(start) < duration {
				resp, err := sendReturn()
				if err != nil {
					fmt.Println("Error resolving checkout return:", err)
				}

				if resp != nil {
					var outcome interface{}
					err = json.NewDecoder(resp.Body).Decode(&outcome)
					if err != nil {
						fmt.Printf("error decoding outcome: %v\n", err)
					} else {
						fmt.Printf("Outcome resolved. Status code: %d, Body: %v\n", resp.StatusCode, outcome)
					}
					resp.Body.Close()
				}

				time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
			}
		}()
	}

	wg.Wait()
}

func sendReturn() (*http.Response, error) {
	query := createRedirectQuery()

	req, err := http.NewRequest(http.MethodGet, returnURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-User-ID", testUser)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// createRedirectQuery fabricates the parameter mixes the gateway and
// legacy links produce, including ones that will match nothing.
func createRedirectQuery() url.Values {
	query := url.Values{}

	switch rand.Intn(4) {
	case 0:
		query.Set("page_request_uid", uuid.New().String())
		query.Set("transaction_token", uuid.New().String())
	case 1:
		query.Set("page_request_uid", uuid.New().String())
	case 2:
		query.Set("status", "success")
		query.Set("order", "txn_"+uuid.New().String())
	default:
		query.Set("status", "success")
		query.Set("order", uuid.New().String())
		query.Set("type", "game")
		query.Set("free", "true")
	}

	return query
}
