package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends for the authenticated user.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.ListFriends(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(friends)
}

// GetFriendsOf handles GET /api/users/:id/friends
func (s *Server) GetFriendsOf(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friends, err := s.friendService.ListFriends(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(friends)
}

// GetFriendshipStatus handles GET /api/friends/status/:userId
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	areFriends := s.friendService.AreFriends(c.UserContext(), currentUserID(c), otherID)
	return c.JSON(fiber.Map{"are_friends": areFriends})
}

// GetPendingRequests handles GET /api/friends/requests: pending requests
// addressed to the authenticated user, newest first.
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.ListPending(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(requests)
}

// SendFriendRequest handles POST /api/friends/requests/:userId
//
// Returns 201 with the pending request, or 200 with already_friends set when
// the pair is already ACCEPTED.
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	toID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, err := s.friendService.SendRequest(c.UserContext(), currentUserID(c), toID)
	if err != nil {
		return s.respondError(c, err)
	}
	if result.AlreadyFriends {
		return c.JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.Accept(c.UserContext(), requestID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(request)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.Reject(c.UserContext(), requestID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(request)
}

// CancelFriendRequest handles DELETE /api/friends/requests/:requestId
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.friendService.Cancel(c.UserContext(), requestID); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend request cancelled"})
}
