package handlers

import (
	"errors"

	"wardaropa-backend/internal/models"
	"wardaropa-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func postIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("postId")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// CreatePostHandler stores a post; descripcion is optional and defaults to "".
func CreatePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePostRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.UsuarioID == 0 || req.Foto == "" {
			return badRequest(c, "usuario_id and foto are required")
		}

		id, err := postService.CreatePost(c.UserContext(), req)
		if err != nil {
			return serverError(c, err, "CreatePost", "failed to create post")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "post created",
			"postId":  id,
		})
	}
}

// ListPostsHandler returns every post with its author and like/comment counts.
func ListPostsHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := postService.ListPosts(c.UserContext())
		if err != nil {
			return serverError(c, err, "ListPosts", "failed to fetch posts")
		}
		return c.JSON(fiber.Map{"success": true, "posts": posts})
	}
}

// LikeHandler records a like; a second like by the same user is a 400.
func LikeHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, ok := postIDParam(c)
		if !ok {
			return badRequest(c, "invalid post id")
		}
		var req models.LikeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.UsuarioID == 0 {
			return badRequest(c, "usuario_id is required")
		}

		if err := postService.Like(c.UserContext(), postID, int64(req.UsuarioID)); err != nil {
			if errors.Is(err, services.ErrAlreadyLiked) {
				return badRequest(c, "post already liked")
			}
			return serverError(c, err, "Like", "failed to like post")
		}

		return c.JSON(fiber.Map{"success": true, "message": "like added"})
	}
}

// UnlikeHandler removes a like and succeeds even if there was none.
func UnlikeHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, ok := postIDParam(c)
		if !ok {
			return badRequest(c, "invalid post id")
		}
		var req models.LikeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.UsuarioID == 0 {
			return badRequest(c, "usuario_id is required")
		}

		if err := postService.Unlike(c.UserContext(), postID, int64(req.UsuarioID)); err != nil {
			return serverError(c, err, "Unlike", "failed to remove like")
		}

		return c.JSON(fiber.Map{"success": true, "message": "like removed"})
	}
}

// CreateCommentHandler adds a comment to a post.
func CreateCommentHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, ok := postIDParam(c)
		if !ok {
			return badRequest(c, "invalid post id")
		}
		var req models.CreateCommentRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.UsuarioID == 0 || req.Texto == "" {
			return badRequest(c, "usuario_id and texto are required")
		}

		id, err := postService.AddComment(c.UserContext(), postID, req)
		if err != nil {
			return serverError(c, err, "CreateComment", "failed to add comment")
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "comment added",
			"commentId": id,
		})
	}
}

// ListCommentsHandler returns a post's comments, oldest first. A post id that
// is not a positive number matches no post, so the list is empty.
func ListCommentsHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, ok := postIDParam(c)
		if !ok {
			return c.JSON(fiber.Map{"success": true, "comments": []models.Comment{}})
		}

		comments, err := postService.ListComments(c.UserContext(), postID)
		if err != nil {
			return serverError(c, err, "ListComments", "failed to fetch comments")
		}
		return c.JSON(fiber.Map{"success": true, "comments": comments})
	}
}
