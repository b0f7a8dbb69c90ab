package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"traduce/internal/books"
	"traduce/internal/config"
	"traduce/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonPath   string
		title      string
		subtitle   string
		authors    []string
		isbn13     string
		isbn10     string
		publisher  string
		year       int
		categories []string
		language   string
		target     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Queue a source book for translation investigation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				source, err := buildSource(jsonPath, books.SourceBook{
					Title:      title,
					Subtitle:   subtitle,
					Authors:    authors,
					ISBN13:     isbn13,
					ISBN10:     isbn10,
					Publisher:  publisher,
					Year:       year,
					Categories: categories,
					Language:   language,
				})
				if err != nil {
					return err
				}

				targetLanguage := strings.TrimSpace(target)
				if targetLanguage == "" {
					targetLanguage = cfg.Investigation.TargetLanguage
				}

				fingerprint := queue.BookFingerprint(source)
				if existing, err := store.FindByFingerprint(cmd.Context(), fingerprint); err != nil {
					return err
				} else if existing != nil {
					return fmt.Errorf("book already queued as item #%d (%s)", existing.ID, existing.Status)
				}

				item, err := store.NewBook(cmd.Context(), source, targetLanguage)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued #%d: %q -> %s\n", item.ID, item.Title, item.TargetLanguage)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json", "", "Read the source book from a JSON file instead of flags")
	cmd.Flags().StringVar(&title, "title", "", "Source book title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Source book subtitle")
	cmd.Flags().StringArrayVar(&authors, "author", nil, "Author name (repeatable)")
	cmd.Flags().StringVar(&isbn13, "isbn13", "", "ISBN-13 of the source edition")
	cmd.Flags().StringVar(&isbn10, "isbn10", "", "ISBN-10 of the source edition")
	cmd.Flags().StringVar(&publisher, "publisher", "", "Source edition publisher")
	cmd.Flags().IntVar(&year, "year", 0, "Source publication year")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Category or subject tag (repeatable)")
	cmd.Flags().StringVar(&language, "language", "", "Source language code")
	cmd.Flags().StringVar(&target, "target", "", "Target language code (defaults to the configured target)")

	return cmd
}

func buildSource(jsonPath string, flagSource books.SourceBook) (books.SourceBook, error) {
	source := flagSource
	if strings.TrimSpace(jsonPath) != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return books.SourceBook{}, fmt.Errorf("read source book file: %w", err)
		}
		if err := json.Unmarshal(data, &source); err != nil {
			return books.SourceBook{}, fmt.Errorf("parse source book file: %w", err)
		}
	}
	if strings.TrimSpace(source.Title) == "" {
		return books.SourceBook{}, errors.New("source title is required")
	}
	if strings.TrimSpace(source.Language) == "" {
		return books.SourceBook{}, errors.New("source language is required")
	}
	return source, nil
}
