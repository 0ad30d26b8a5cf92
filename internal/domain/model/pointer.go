package model

// ThreadPointer is the durable link from a pull request to its chat thread:
// the head message timestamp plus the last rendered status. It is persisted
// as marker comments inside the PR body (the body field is the datastore)
// and read back from the code host on every comment-like event.
type ThreadPointer struct {
	ThreadTS string
	Status   PRStatus
}
