package posts

// Authorize reports whether caller may perform a destructive operation on a
// resource owned by owner. An empty identity never matches.
func Authorize(owner, caller string) bool {
	return caller != "" && owner == caller
}

// canRemoveComment allows the comment's author and the post's owner
func canRemoveComment(post *Post, comment Comment, caller string) bool {
	return Authorize(comment.User, caller) || Authorize(post.Owner, caller)
}
