package domain

import "strings"

const PathSeparator = "/"

// CommentPath is the materialized path of a comment: ids from the thread root
// down to the comment itself, joined by PathSeparator.
type CommentPath string

// NewCommentPath appends id to the parent's path. An empty parent starts a new thread.
func NewCommentPath(parent CommentPath, id string) CommentPath {
	if parent == "" {
		return CommentPath(id)
	}
	return CommentPath(string(parent) + PathSeparator + id)
}

func (p CommentPath) IDs() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), PathSeparator)
}

// Ancestors returns the ids of the path without its last element.
func (p CommentPath) Ancestors() []string {
	ids := p.IDs()
	if len(ids) == 0 {
		return nil
	}
	return ids[:len(ids)-1]
}

// Depth is the number of ancestors.
func (p CommentPath) Depth() int {
	if p == "" {
		return 0
	}
	return strings.Count(string(p), PathSeparator)
}

func (p CommentPath) Root() string {
	s := string(p)
	if i := strings.Index(s, PathSeparator); i >= 0 {
		return s[:i]
	}
	return s
}

func (p CommentPath) Self() string {
	s := string(p)
	if i := strings.LastIndex(s, PathSeparator); i >= 0 {
		return s[i+len(PathSeparator):]
	}
	return s
}
