package posts

import "slices"

// likeIndex maps each liking user to their position in the display order
func likeIndex(likes []Like) map[string]int {
	idx := make(map[string]int, len(likes))
	for i, l := range likes {
		if _, seen := idx[l.User]; !seen {
			idx[l.User] = i
		}
	}
	return idx
}

// HasLiked reports whether user currently likes the post
func HasLiked(post *Post, user string) bool {
	_, ok := likeIndex(post.Likes)[user]
	return ok
}

// ToggleLike flips user's like on post in place.
//   - user already likes the post -> their entry is removed (unlike)
//   - otherwise -> a new like is put at the front (like)
//
// The result depends only on the snapshot passed in; callers must save it
// conditionally against the state they read.
func ToggleLike(post *Post, user string) LikeAction {
	if RemoveLike(post, user) {
		return LikeActionUnliked
	}

	post.Likes = slices.Insert(post.Likes, 0, Like{User: user})
	return LikeActionLiked
}

// RemoveLike drops user's like from post in place and reports whether there was one.
// Removing a like that is not there leaves the post untouched.
func RemoveLike(post *Post, user string) bool {
	if !HasLiked(post, user) {
		return false
	}
	// DeleteFunc drops every entry for the user, which also repairs a
	// duplicate written by an older, unsynchronized writer
	post.Likes = slices.DeleteFunc(post.Likes, func(l Like) bool {
		return l.User == user
	})
	return true
}
