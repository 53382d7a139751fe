package semverbump

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrRepository wraps failures to read the version-control history.
var ErrRepository = errors.New("could not read git repository")

// History lists the commits of a project and the tags attached to them.
type History interface {
	// Commits returns the log reachable from HEAD, newest first.
	Commits(ctx context.Context) ([]Commit, error)
	// Tags returns the commit id to tag name index.
	Tags(ctx context.Context) (TagIndex, error)
}

// GitRepository reads history through go-git.
type GitRepository struct {
	repo       *git.Repository
	tagPattern *regexp.Regexp
}

// GitOption configures a GitRepository.
type GitOption func(*GitRepository)

// WithTagPattern keeps only tags whose short name matches re.
func WithTagPattern(re *regexp.Regexp) GitOption {
	return func(g *GitRepository) {
		g.tagPattern = re
	}
}

// OpenGitRepository opens the repository containing path.
func OpenGitRepository(path string, opts ...GitOption) (*GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w at %q: %v", ErrRepository, path, err)
	}
	return NewGitRepository(repo, opts...), nil
}

// NewGitRepository wraps an already opened repository.
func NewGitRepository(repo *git.Repository, opts ...GitOption) *GitRepository {
	g := &GitRepository{repo: repo}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Commits implements History. A repository without commits yields none.
func (g *GitRepository) Commits(ctx context.Context) ([]Commit, error) {
	head, err := g.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: resolving HEAD: %v", ErrRepository, err)
	}

	iter, err := g.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("%w: reading log: %v", ErrRepository, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, Commit{
			ID:        c.Hash.String(),
			Message:   c.Message,
			Timestamp: c.Committer.When.Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking log: %v", ErrRepository, err)
	}
	return commits, nil
}

// Tags implements History. Annotated tags are peeled to the commit they point at.
func (g *GitRepository) Tags(ctx context.Context) (TagIndex, error) {
	refs, err := g.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("%w: listing tags: %v", ErrRepository, err)
	}
	defer refs.Close()

	index := make(TagIndex)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := ref.Name().Short()
		if g.tagPattern != nil && !g.tagPattern.MatchString(name) {
			return nil
		}

		hash := ref.Hash()
		tag, err := g.repo.TagObject(hash)
		switch {
		case err == nil:
			commit, err := tag.Commit()
			if err != nil {
				// Tags of trees or blobs do not mark a release.
				if errors.Is(err, object.ErrUnsupportedObject) {
					return nil
				}
				return err
			}
			hash = commit.Hash
		case errors.Is(err, plumbing.ErrObjectNotFound):
			// lightweight
		default:
			return err
		}

		index[hash.String()] = name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: resolving tags: %v", ErrRepository, err)
	}
	return index, nil
}
