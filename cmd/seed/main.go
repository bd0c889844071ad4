// Package main implements a standalone seed script that populates a running
// bookreview instance with realistic test data over its HTTP API: a handful
// of users, a shelf of books, and a spread of reviews.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func httpPost(url, token string, body any) (map[string]any, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return result, nil
}

type userDef struct {
	name  string
	email string
	token string // populated after registration
}

type bookDef struct {
	title       string
	author      string
	description string
	genre       string
	id          string // populated after creation
}

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[seed] ")

	baseURL := getEnv("BOOKREVIEW_URL", "http://localhost:8080")
	password := getEnv("SEED_PASSWORD", "seed-password-1")

	users := []userDef{
		{name: "Alice Hart", email: "alice@example.com"},
		{name: "Ben Okoro", email: "ben@example.com"},
		{name: "Carla Jimenez", email: "carla@example.com"},
		{name: "Dan Wu", email: "dan@example.com"},
	}

	books := []bookDef{
		{title: "The Left Hand of Darkness", author: "Ursula K. Le Guin", genre: "science fiction", description: "An envoy on a planet of ambisexual humans."},
		{title: "Kafka on the Shore", author: "Haruki Murakami", genre: "fiction", description: "Two intertwined odysseys across Japan."},
		{title: "The Pragmatic Programmer", author: "Hunt & Thomas", genre: "technical", description: "Journeyman advice for software careers."},
		{title: "Piranesi", author: "Susanna Clarke", genre: "fantasy", description: "A labyrinthine house and its faithful resident."},
		{title: "Thinking, Fast and Slow", author: "Daniel Kahneman", genre: "non-fiction", description: "Two systems of judgement and their biases."},
		{title: "A Memory Called Empire", author: "Arkady Martine", genre: "science fiction", description: "An ambassador inherits her predecessor's ghosts."},
	}

	comments := []string{
		"Couldn't put it down.",
		"Slow start but worth it.",
		"Re-read material, easily.",
		"Not for me, though I see the appeal.",
		"The middle third drags a little.",
		"Picked it up on a whim; glad I did.",
	}

	// 1. Register users (login instead if the email is already taken).
	log.Println("Registering users...")
	for i := range users {
		resp, err := httpPost(baseURL+"/api/users/register", "", map[string]string{
			"name":     users[i].name,
			"email":    users[i].email,
			"password": password,
		})
		if err != nil {
			resp, err = httpPost(baseURL+"/api/users/login", "", map[string]string{
				"email":    users[i].email,
				"password": password,
			})
			if err != nil {
				log.Fatalf("register/login %s: %v", users[i].email, err)
			}
		}
		users[i].token, _ = resp["token"].(string)
		log.Printf("  User: %s", users[i].email)
	}

	// 2. Create books, round-robin across users.
	log.Println("Creating books...")
	for i := range books {
		creator := users[i%len(users)]
		resp, err := httpPost(baseURL+"/api/books", creator.token, map[string]string{
			"title":       books[i].title,
			"author":      books[i].author,
			"description": books[i].description,
			"genre":       books[i].genre,
		})
		if err != nil {
			log.Fatalf("create book %q: %v", books[i].title, err)
		}
		books[i].id, _ = resp["id"].(string)
		log.Printf("  Book: %s (id=%s)", books[i].title, books[i].id)
	}

	// 3. Add reviews; each user reviews a random subset of books.
	log.Println("Adding reviews...")
	total := 0
	for _, u := range users {
		for _, b := range books {
			if rand.Intn(3) == 0 {
				continue
			}
			_, err := httpPost(baseURL+"/api/reviews", u.token, map[string]any{
				"bookId":  b.id,
				"rating":  1 + rand.Intn(5),
				"comment": comments[rand.Intn(len(comments))],
			})
			if err != nil {
				log.Printf("  WARNING: review %q by %s: %v", b.title, u.email, err)
				continue
			}
			total++
		}
	}
	log.Printf("Done: %d users, %d books, %d reviews.", len(users), len(books), total)
}
