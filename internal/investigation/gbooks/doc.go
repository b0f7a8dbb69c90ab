// Package gbooks provides a minimal client for the Google Books volumes API.
// It covers the single search endpoint the investigation engine needs and
// converts raw volume payloads into candidate records.
package gbooks
