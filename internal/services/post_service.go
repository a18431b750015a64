package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/observability"
	"github.com/ripple-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostService owns posts, their engagement (likes, comments) and the
// resulting notification fan-out, plus the feed aggregation read paths.
type PostService struct {
	db               *gorm.DB
	postRepo         repositories.PostRepository
	likeRepo         repositories.LikeRepository
	commentRepo      repositories.CommentRepository
	notificationRepo repositories.NotificationRepository
}

// NewPostService creates a new PostService
func NewPostService(
	db *gorm.DB,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
) *PostService {
	return &PostService{
		db:               db,
		postRepo:         postRepo,
		likeRepo:         likeRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
	}
}

// CreatePost creates a post owned by the actor
func (s *PostService) CreatePost(ctx context.Context, actorID string, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: actorID,
		Content:  req.Content,
		Image:    req.Image,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, models.NewStoreError("failed to create post", err)
	}
	return post, nil
}

// DeletePost removes the actor's own post; likes, comments and notifications
// referencing it go with it.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("post")
		}
		return models.NewStoreError("failed to delete post", err)
	}
	if post.AuthorID != actorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return models.NewStoreError("failed to delete post", err)
	}
	return nil
}

// errLikeExists aborts the like transaction when the unique index reports a
// concurrent duplicate insert.
var errLikeExists = errors.New("like already exists")

// ToggleLike likes the post, or removes the actor's like when it already
// exists. Liking someone else's post emits a LIKE notification in the same
// transaction as the insert. Returns whether the post is liked afterwards.
func (s *PostService) ToggleLike(ctx context.Context, actorID, postID string) (bool, error) {
	liked, err := s.likeRepo.HasUserLikedPost(ctx, actorID, postID)
	if err != nil {
		return false, models.NewStoreError("failed to toggle like", err)
	}

	if liked {
		if err := s.likeRepo.DeleteLike(ctx, actorID, postID); err != nil {
			return false, models.NewStoreError("failed to toggle like", err)
		}
		// Notifications from the earlier like are not retracted.
		return false, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.postRepo.WithTx(tx).GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := s.likeRepo.WithTx(tx).CreateLike(ctx, &models.Like{UserID: actorID, PostID: postID}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errLikeExists
			}
			return err
		}
		return emitNotification(ctx, s.notificationRepo.WithTx(tx), post.AuthorID, actorID, models.NotificationLike, &postID, nil)
	})
	if err != nil {
		// The existence pre-check is only an optimization; the unique index
		// decides, and losing that race still means the post is liked.
		if errors.Is(err, errLikeExists) {
			return true, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.NewNotFoundError("post")
		}
		return false, models.NewStoreError("failed to toggle like", err)
	}
	return true, nil
}

// AddComment adds a comment to a post and notifies the post's author when
// someone else wrote it. The notification insert is deliberately outside the
// comment insert: a failure in between leaves a comment without its
// notification, which is accepted and only logged.
func (s *PostService) AddComment(ctx context.Context, actorID, postID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewInvalidOperationError("Comment content is required")
	}

	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post")
		}
		return nil, models.NewStoreError("failed to create comment", err)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: actorID,
		Content:  content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, models.NewStoreError("failed to create comment", err)
	}

	if err := emitNotification(ctx, s.notificationRepo, post.AuthorID, actorID, models.NotificationComment, &postID, &comment.ID); err != nil {
		observability.GlobalLogger.ErrorContext(ctx, "comment created but notification failed",
			"comment_id", comment.ID, "post_id", postID, "error", err)
	}
	return comment, nil
}

// DeleteComment removes the comment when the actor wrote it. Anything else
// is a silent no-op so the call never leaks whether the comment exists.
func (s *PostService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewStoreError("failed to delete comment", err)
	}
	if comment.AuthorID != actorID {
		return nil
	}
	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return models.NewStoreError("failed to delete comment", err)
	}
	return nil
}

// ListFeed returns every post enriched with author, comments (with their
// authors), likes and the derived like count, newest first.
func (s *PostService) ListFeed(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch posts", err)
	}
	for i := range posts {
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
		if posts[i].Likes == nil {
			posts[i].Likes = []models.Like{}
		}
		posts[i].LikeCount = int64(len(posts[i].Likes))
		posts[i].CommentCount = int64(len(posts[i].Comments))
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// ListUserPosts returns the posts authored by the given user with author and
// aggregate like/comment counts.
func (s *PostService) ListUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch user posts", err)
	}
	return s.attachCounts(ctx, posts)
}

// ListLikedPosts returns the posts the given user has liked with author and
// aggregate like/comment counts.
func (s *PostService) ListLikedPosts(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.postRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch liked posts", err)
	}
	return s.attachCounts(ctx, posts)
}

// attachCounts fills like/comment counts from grouped COUNT queries
// restricted to the fetched post set.
func (s *PostService) attachCounts(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	if len(posts) == 0 {
		return []models.Post{}, nil
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likeCounts, err := s.likeRepo.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch like counts", err)
	}
	commentCounts, err := s.commentRepo.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch comment counts", err)
	}
	for i := range posts {
		posts[i].LikeCount = likeCounts[posts[i].ID]
		posts[i].CommentCount = commentCounts[posts[i].ID]
	}
	return posts, nil
}
