// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/olegiv/newsroom/internal/model"
	"github.com/olegiv/newsroom/internal/repository"
)

// EmptyKnowledgeBase is the knowledge base text when nothing is published.
const EmptyKnowledgeBase = "No articles published yet."

const (
	chatGreeting = "Hello! I am Lumen, your offline archivist. I can help you find information " +
		"contained within The Light's published articles. What are you looking for?"
	chatFallback = "I searched The Light's archives but couldn't find any articles matching your query. " +
		"Please try searching for specific topics like 'sports', 'campus', or 'science'."
	chatMaxTitles = 3
)

// Responder answers a reader's chat message using the knowledge base text.
type Responder interface {
	Reply(ctx context.Context, message, knowledge string) (string, error)
}

var (
	greetingRe = regexp.MustCompile(`^(hi|hello|hey|greetings)`)
	titleRe    = regexp.MustCompile(`TITLE: (.*)`)
)

// KeywordResponder answers from the knowledge base without any external
// service: greetings get a fixed reply, other messages are matched as a
// substring against each article block.
type KeywordResponder struct{}

// Reply implements Responder.
func (KeywordResponder) Reply(_ context.Context, message, knowledge string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(message))
	if greetingRe.MatchString(q) {
		return chatGreeting, nil
	}

	var titles []string
	for _, block := range strings.Split(knowledge, "---") {
		if strings.TrimSpace(block) == "" || !strings.Contains(strings.ToLower(block), q) {
			continue
		}
		title := "Unknown Article"
		if m := titleRe.FindStringSubmatch(block); m != nil {
			title = m[1]
		}
		titles = append(titles, title)
		if len(titles) == chatMaxTitles {
			break
		}
	}

	if len(titles) == 0 {
		return chatFallback, nil
	}
	return fmt.Sprintf("I found information related to %q in the following articles:\n\n- %s\n\n"+
		"You can read these articles to learn more. Is there a specific detail you need?",
		message, strings.Join(titles, "\n- ")), nil
}

// OpenAIResponder answers with an OpenAI chat model grounded on the
// knowledge base.
type OpenAIResponder struct {
	client openai.Client
	model  string
}

// NewOpenAIResponder creates a responder using apiKey and model.
func NewOpenAIResponder(apiKey, model string, opts ...option.RequestOption) *OpenAIResponder {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIResponder{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Reply implements Responder.
func (r *OpenAIResponder) Reply(ctx context.Context, message, knowledge string) (string, error) {
	system := "You are Lumen, the archivist of a student publication. " +
		"Answer only from the published articles below. If they do not cover the question, say so.\n\n" + knowledge

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(message),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatService answers reader questions about published articles.
type ChatService struct {
	articles  *repository.ArticleRepository
	responder Responder
	logger    *slog.Logger
}

// NewChatService creates a new ChatService. A nil responder selects
// KeywordResponder.
func NewChatService(articles *repository.ArticleRepository, responder Responder, logger *slog.Logger) *ChatService {
	if responder == nil {
		responder = KeywordResponder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{articles: articles, responder: responder, logger: logger}
}

// KnowledgeBase renders every published article as a text block.
func (s *ChatService) KnowledgeBase() string {
	published := s.articles.Filter(func(a *model.Article) bool { return a.IsPublished() })
	if len(published) == 0 {
		return EmptyKnowledgeBase
	}

	blocks := make([]string, 0, len(published))
	for _, a := range published {
		blocks = append(blocks, fmt.Sprintf("---\nTITLE: %s\nAUTHOR: %s\nCATEGORY: %s\nPUBLISHED: %s\nCONTENT: %s\n---",
			a.Title, a.AuthorName, a.CategorySlug, a.PublishedAt.Format(model.EventDateLayout), a.Content))
	}
	return strings.Join(blocks, "\n")
}

// Reply answers message. When the configured responder fails the keyword
// responder answers instead.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", invalid("message", "is required")
	}

	knowledge := s.KnowledgeBase()
	reply, err := s.responder.Reply(ctx, message, knowledge)
	if err == nil {
		return reply, nil
	}

	s.logger.Warn("chat responder failed, using keyword search", "error", err)
	return KeywordResponder{}.Reply(ctx, message, knowledge)
}
