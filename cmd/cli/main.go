package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:5000"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a test message to send to the chat channel: ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fmt.Println("Nothing to send.")
		return
	}

	body, _ := json.Marshal(map[string]string{"message": raw})
	resp, err := http.Post(api+"/webhook/test", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		fmt.Println("Sent! Check the chat channel.")
	} else {
		fmt.Println("API returned status:", resp.Status)
	}
}
