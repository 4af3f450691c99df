package http

import (
	"fmt"
	"net/http"
)

// Minimal server-rendered pages behind the access gate. The real frontend is
// a separate client; these exist so the gate has concrete paths to protect
// and redirects land somewhere sensible.

func pageHandler(title, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>", title, title, body)
	}
}

func landingPage() http.HandlerFunc {
	return pageHandler("True Feedback", "Receive anonymous feedback through your shareable link.")
}

func signInPage() http.HandlerFunc {
	return pageHandler("Sign In", "Sign in with your username or email.")
}

func signUpPage() http.HandlerFunc {
	return pageHandler("Sign Up", "Create an account to start receiving feedback.")
}

func verifyPage() http.HandlerFunc {
	return pageHandler("Verify Account", "Enter the verification code sent to your email.")
}

func dashboardPage() http.HandlerFunc {
	return pageHandler("Dashboard", "Your received messages.")
}
