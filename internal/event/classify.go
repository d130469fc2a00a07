// Package event classifies the raw CI trigger into a closed TriggerEvent
// variant and resolves the commit range the scanner is restricted to.
package event

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leaksentry/leaksentry/internal/config"
	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// payload is the subset of the CI event document the classifier consumes.
type payload struct {
	Repository *struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		HTMLURL  string `json:"html_url"`
		Owner    struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
	Commits []struct {
		ID string `json:"id"`
	} `json:"commits"`
	PullRequest *struct {
		Number int `json:"number"`
		Base   struct {
			SHA string `json:"sha"`
		} `json:"base"`
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

// Read loads the event payload file named by the configuration and
// classifies it. It fails fast with ErrUnsupportedEvent for event names
// outside the closed supported set, before any scanner invocation.
func Read(cfg *config.Config) (model.TriggerEvent, error) {
	raw, err := os.ReadFile(cfg.EventPath)
	if err != nil {
		return model.TriggerEvent{}, fmt.Errorf("reading event payload %s: %w", cfg.EventPath, err)
	}

	fallback := model.Repository{
		Owner:    cfg.RepositoryOwner,
		Name:     repoNameFromFullName(cfg.Repository, cfg.RepositoryOwner),
		FullName: cfg.Repository,
		HTMLURL:  "https://github.com/" + cfg.Repository,
	}

	return Classify(cfg.EventName, raw, fallback)
}

// Classify validates the event name against the closed trigger set and
// builds the TriggerEvent from the payload document. The fallback
// repository identity is used when the payload omits the repository
// object, which scheduled events are allowed to do.
func Classify(eventName string, rawPayload []byte, fallback model.Repository) (model.TriggerEvent, error) {
	kind, err := model.ParseTriggerKind(eventName)
	if err != nil {
		return model.TriggerEvent{}, err
	}

	var p payload
	if err := json.Unmarshal(rawPayload, &p); err != nil {
		return model.TriggerEvent{}, fmt.Errorf("parsing event payload: %w", err)
	}

	repo := fallback
	if p.Repository != nil {
		repo = model.Repository{
			Owner:    p.Repository.Owner.Login,
			Name:     p.Repository.Name,
			FullName: p.Repository.FullName,
			HTMLURL:  p.Repository.HTMLURL,
		}
	}

	ev := model.TriggerEvent{Kind: kind, Repository: repo}

	switch kind {
	case model.TriggerPush:
		for _, c := range p.Commits {
			if c.ID != "" {
				ev.Commits = append(ev.Commits, c.ID)
			}
		}
	case model.TriggerPullRequest:
		if p.PullRequest == nil {
			return model.TriggerEvent{}, fmt.Errorf("pull_request event payload is missing the pull_request object")
		}
		ev.PullRequest = &model.PullRequestRef{
			Number:  p.PullRequest.Number,
			BaseSHA: p.PullRequest.Base.SHA,
			HeadSHA: p.PullRequest.Head.SHA,
		}
	case model.TriggerManualDispatch, model.TriggerScheduled:
		// Full-history scans carry no commits.
	}

	return ev, nil
}

func repoNameFromFullName(fullName, owner string) string {
	prefix := owner + "/"
	if len(fullName) > len(prefix) && fullName[:len(prefix)] == prefix {
		return fullName[len(prefix):]
	}
	return fullName
}
