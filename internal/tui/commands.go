package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edward-r/prompt-maker/internal/attach"
	"github.com/edward-r/prompt-maker/internal/llm"
	"github.com/edward-r/prompt-maker/internal/prompts"
)

const refineTimeout = 3 * time.Minute

type refineResultMsg struct {
	request llm.RefineRequest
	model   string
	label   string
	refined string
	err     error
}

type attachResultMsg struct {
	path string
	file attach.File
	err  error
}

type saveResultMsg struct {
	entry prompts.Entry
	err   error
}

type historyResultMsg struct {
	entries []prompts.Entry
	err     error
}

func refineJob(client llm.Client, req llm.RefineRequest) jobRunner {
	request := req
	request.Attachments = append([]llm.Attachment(nil), req.Attachments...)
	model, label := client.Model(), client.Name()
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, refineTimeout)
		defer cancel()
		refined, err := client.Refine(ctx, request)
		return refineResultMsg{request: request, model: model, label: label, refined: refined, err: err}, err
	}
}

func attachFileJob(path string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		file, err := attach.Load(path)
		return attachResultMsg{path: path, file: file, err: err}, err
	}
}

func saveHistoryJob(path string, entry prompts.Entry) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := prompts.Save(path, []prompts.Entry{entry})
		return saveResultMsg{entry: entry, err: err}, err
	}
}

func loadHistoryJob(path string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		entries, err := prompts.Recent(path, historyLimit)
		return historyResultMsg{entries: entries, err: err}, err
	}
}
