package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Generate asks a running service at node for a fresh address.
func Generate(node string, req *GenerateRequest) (*GenerateResponse, error) {
	client := &http.Client{Timeout: 20 * time.Second}

	body, err := json.Marshal(req)
	if err != nil {
		panic(err)
	}
	endpoint := strings.TrimRight(node, "/") + "/generate"
	hr, err := http.NewRequest("POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	hr.Close = true
	hr.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(hr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		GenerateResponse
		Error string `json:"error"`
	}
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, err
	}
	if result.Error != "" || resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Generate(%s, %s) => %d %s", node, req.AddressType, resp.StatusCode, result.Error)
	}
	return &result.GenerateResponse, nil
}
