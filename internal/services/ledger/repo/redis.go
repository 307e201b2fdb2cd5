package repo

import (
	"context"

	perr "rinkbot/internal/platform/errors"
	"rinkbot/internal/platform/store"
	"rinkbot/internal/services/ledger/domain"
)

const (
	// markerPrefix keys the idempotency markers: "id-<commentID>"
	markerPrefix = "id-"

	// totalField is the submission-hash field holding the thread-wide tally.
	// Author ids (t2_*) can never collide with it
	totalField = "total"
)

// commitScript runs the whole commit check-and-set server-side so the
// read-check-write sequence cannot interleave with another committer.
// KEYS[1] marker key, KEYS[2] submission hash.
// ARGV[1] author field, ARGV[2] thread cap, ARGV[3] author cap, ARGV[4] allowlisted flag
const commitScript = `
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 'already_handled'
end
if ARGV[4] ~= '1' then
  local total = tonumber(redis.call('HGET', KEYS[2], 'total') or '0')
  if total >= tonumber(ARGV[2]) then
    return 'thread_saturated'
  end
  local mine = tonumber(redis.call('HGET', KEYS[2], ARGV[1]) or '0')
  if mine >= tonumber(ARGV[3]) then
    return 'author_saturated'
  end
end
redis.call('SET', KEYS[1], '1')
redis.call('HINCRBY', KEYS[2], 'total', 1)
redis.call('HINCRBY', KEYS[2], ARGV[1], 1)
return 'accepted'
`

// Redis is the production ledger store over the platform KV seam
type Redis struct {
	kv store.KV
}

// NewRedis wraps the platform KV seam
func NewRedis(kv store.KV) *Redis { return &Redis{kv: kv} }

func markerKey(commentID string) string { return markerPrefix + commentID }

// SeenComment reports whether the idempotency marker exists
func (r *Redis) SeenComment(ctx context.Context, commentID string) (bool, error) {
	return r.kv.Exists(ctx, markerKey(commentID))
}

// Counts returns the tally snapshot for the non-mutating admission check
func (r *Redis) Counts(ctx context.Context, submissionID, authorID string) (domain.Counts, error) {
	exists, err := r.kv.HExists(ctx, submissionID, totalField)
	if err != nil {
		return domain.Counts{}, err
	}
	if !exists {
		return domain.Counts{}, nil
	}
	total, _, err := r.kv.HGetInt(ctx, submissionID, totalField)
	if err != nil {
		return domain.Counts{}, err
	}
	author, _, err := r.kv.HGetInt(ctx, submissionID, authorID)
	if err != nil {
		return domain.Counts{}, err
	}
	return domain.Counts{Total: total, Author: author, Exists: true}, nil
}

// CommitAtomic evaluates the commit script and maps its verdict string
func (r *Redis) CommitAtomic(ctx context.Context, in domain.CommitInput) (domain.Verdict, error) {
	flag := "0"
	if in.Allowlisted {
		flag = "1"
	}
	res, err := r.kv.Eval(ctx, commitScript,
		[]string{markerKey(in.CommentID), in.SubmissionID},
		in.AuthorID, in.ThreadCap, in.AuthorCap, flag,
	)
	if err != nil {
		return domain.Verdict{}, err
	}

	verdict, ok := res.(string)
	if !ok {
		return domain.Verdict{}, perr.Storef("commit script returned %T, want string", res)
	}
	switch verdict {
	case "accepted":
		return domain.Accept(), nil
	case string(domain.ReasonAlreadyHandled),
		string(domain.ReasonThreadSaturated),
		string(domain.ReasonAuthorSaturated):
		return domain.Reject(domain.Reason(verdict)), nil
	default:
		return domain.Verdict{}, perr.Storef("commit script returned unknown verdict %q", verdict)
	}
}
