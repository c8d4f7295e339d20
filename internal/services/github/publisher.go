package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"
	"golang.org/x/time/rate"

	"github.com/terrascribe/terrascribe/internal/services/markdown"
	"github.com/terrascribe/terrascribe/internal/types"
)

const defaultRequestsPerSecond = 2

type PublisherOpts struct {
	Owner      string
	Repo       string
	Token      string
	BaseBranch string

	// RequestsPerSecond paces the contents API, which commits one file per call.
	RequestsPerSecond float64

	// BaseURL overrides the GitHub API endpoint, used by tests.
	BaseURL string
}

// Publisher pushes a rendered bundle to GitHub: branch from the base branch, one
// commit per file, then a pull request. It is the only component with network side
// effects; the extract/render pipeline stays pure.
type Publisher struct {
	client     *gh.Client
	owner      string
	repo       string
	baseBranch string
	limiter    *rate.Limiter
}

func NewPublisher(opts PublisherOpts) (*Publisher, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("github owner and repo are required")
	}

	baseBranch := opts.BaseBranch
	if baseBranch == "" {
		baseBranch = types.DefaultBaseBranch
	}

	requestsPerSecond := opts.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRequestsPerSecond
	}

	client := gh.NewClient(nil)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		parsed, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		client.BaseURL = parsed
	}

	return &Publisher{
		client:     client,
		owner:      opts.Owner,
		repo:       opts.Repo,
		baseBranch: baseBranch,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// BranchName returns the branch to publish on: the custom name when one was given,
// otherwise a kind-plus-timestamp name like terraform-compute-instance-20240101120000.
func BranchName(kind types.ResourceKind, customName string, now time.Time) string {
	if customName != "" {
		return customName
	}
	return fmt.Sprintf("terraform-%s-%s", kind, now.UTC().Format("20060102150405"))
}

// Publish runs the full branch/commit/PR sequence and returns the PR location. Steps
// are tracked on a state machine so a failed step halts the run instead of opening a
// PR against missing files.
func (p *Publisher) Publish(ctx context.Context, spec types.ResourceSpec, bundle types.TemplateBundle, branchName string) (*types.PublishResult, error) {
	run := types.NewPublishRun(branchName)

	slog.Info("🌿 creating branch", "branch", branchName, "base", p.baseBranch)
	if err := p.createBranch(ctx, branchName); err != nil {
		return nil, fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}
	if err := run.Transition(ctx, types.EventBranchCreated); err != nil {
		return nil, err
	}

	commitMessage := fmt.Sprintf("Add Terraform config: %s", spec.Instruction)
	slog.Info("📦 committing bundle files", "branch", branchName, "files", bundle.Len())
	if err := p.commitFiles(ctx, branchName, bundle, commitMessage); err != nil {
		return nil, fmt.Errorf("failed to commit files to branch %s: %w", branchName, err)
	}
	if err := run.Transition(ctx, types.EventFilesCommitted); err != nil {
		return nil, err
	}

	prURL, err := p.openPullRequest(ctx, spec, bundle, branchName)
	if err != nil {
		return nil, fmt.Errorf("failed to open pull request: %w", err)
	}
	if err := run.Transition(ctx, types.EventPROpened); err != nil {
		return nil, err
	}

	slog.Info("✅ pull request opened", "url", prURL)

	return &types.PublishResult{
		BranchName: branchName,
		PRURL:      prURL,
		FilesCount: bundle.Len(),
	}, nil
}

func (p *Publisher) createBranch(ctx context.Context, branchName string) error {
	baseRef, _, err := p.client.Git.GetRef(ctx, p.owner, p.repo, "heads/"+p.baseBranch)
	if err != nil {
		return fmt.Errorf("failed to resolve base branch %s: %w", p.baseBranch, err)
	}

	_, _, err = p.client.Git.CreateRef(ctx, p.owner, p.repo, &gh.Reference{
		Ref:    gh.Ptr("refs/heads/" + branchName),
		Object: &gh.GitObject{SHA: baseRef.Object.SHA},
	})
	if err != nil {
		return err
	}

	return nil
}

func (p *Publisher) commitFiles(ctx context.Context, branchName string, bundle types.TemplateBundle, message string) error {
	for _, file := range bundle.Files() {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		opts := &gh.RepositoryContentFileOptions{
			Message: gh.Ptr(message),
			Content: []byte(file.Content),
			Branch:  gh.Ptr(branchName),
		}

		existing, _, resp, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, file.Name,
			&gh.RepositoryContentGetOptions{Ref: branchName})
		switch {
		case err == nil && existing != nil:
			opts.SHA = existing.SHA
			if _, _, err := p.client.Repositories.UpdateFile(ctx, p.owner, p.repo, file.Name, opts); err != nil {
				return fmt.Errorf("failed to update %s: %w", file.Name, err)
			}
		case resp != nil && resp.StatusCode == http.StatusNotFound:
			if _, _, err := p.client.Repositories.CreateFile(ctx, p.owner, p.repo, file.Name, opts); err != nil {
				return fmt.Errorf("failed to create %s: %w", file.Name, err)
			}
		default:
			return fmt.Errorf("failed to check existing %s: %w", file.Name, err)
		}
	}

	return nil
}

func (p *Publisher) openPullRequest(ctx context.Context, spec types.ResourceSpec, bundle types.TemplateBundle, branchName string) (string, error) {
	pr, _, err := p.client.PullRequests.Create(ctx, p.owner, p.repo, &gh.NewPullRequest{
		Title: gh.Ptr(PRTitle(spec)),
		Head:  gh.Ptr(branchName),
		Base:  gh.Ptr(p.baseBranch),
		Body:  gh.Ptr(PRBody(spec, bundle)),
	})
	if err != nil {
		return "", err
	}

	return pr.GetHTMLURL(), nil
}

func PRTitle(spec types.ResourceSpec) string {
	return fmt.Sprintf("Terraform: %s", spec.Instruction)
}

// PRBody composes the pull request description from the specification and the bundle's
// file list.
func PRBody(spec types.ResourceSpec, bundle types.TemplateBundle) string {
	files := make([]string, 0, bundle.Len())
	for _, name := range bundle.Names() {
		files = append(files, fmt.Sprintf("`%s`", name))
	}

	return markdown.New().
		AddHeading("Generated Terraform Configuration", 2).
		AddParagraph(fmt.Sprintf("**Instruction**: %s", spec.Instruction)).
		AddParagraph(fmt.Sprintf("**Resource kind**: %s", spec.Kind)).
		AddHeading("Files", 3).
		AddList(files).
		AddHorizontalRule().
		AddParagraph("_This pull request was created by terrascribe._").
		String()
}
