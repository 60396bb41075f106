package server

import (
	"net/http"
	"testing"

	"mindhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupModerationFlow(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	admin, adminAuth := createTestUser(t, s, db, "groupadmin")
	member, memberAuth := createTestUser(t, s, db, "hopeful")

	// Admin creates a group and is its sole member.
	resp := doJSON(t, app, http.MethodPost, "/api/groups", adminAuth, map[string]string{
		"name":        "Evening Circle",
		"description": "winding down together",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var group struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &group)
	require.NotZero(t, group.ID)

	// Duplicate group names are rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/groups", memberAuth, map[string]string{
		"name": "Evening Circle",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Group name taken", errBody.Message)

	// Outsider cannot chat.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", memberAuth, map[string]string{
		"content": "hello?",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Join request goes to pending.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/join", memberAuth, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Duplicate request is an invalid transition.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/join", memberAuth, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Request pending", errBody.Message)

	// Pending requester still cannot chat.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", memberAuth, map[string]string{
		"content": "let me in",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// The requester shows up in the group detail.
	resp = doJSON(t, app, http.MethodGet, "/api/groups/1", adminAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Admin        *struct{ Username string } `json:"admin"`
		Members      []struct{ Username string } `json:"members"`
		JoinRequests []struct{ Username string } `json:"joinRequests"`
		Blocked      []struct{ Username string } `json:"blocked"`
		MessageCount int64                       `json:"message_count"`
	}
	decodeBody(t, resp, &detail)
	require.NotNil(t, detail.Admin)
	assert.Equal(t, "groupadmin", detail.Admin.Username)
	require.Len(t, detail.JoinRequests, 1)
	assert.Equal(t, "hopeful", detail.JoinRequests[0].Username)

	// Non-admin cannot moderate.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/approve", memberAuth, map[string]uint{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Admin approves.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/approve", adminAuth, map[string]uint{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Member can now chat.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", memberAuth, map[string]string{
		"content": "thanks for having me",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var msg struct {
		Content string `json:"content"`
		Sender  *struct{ Username string } `json:"sender"`
	}
	decodeBody(t, resp, &msg)
	require.NotNil(t, msg.Sender)
	assert.Equal(t, "hopeful", msg.Sender.Username)

	// Messages list oldest first.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", adminAuth, map[string]string{
		"content": "welcome aboard",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/groups/1/messages", memberAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msgs []struct {
		Content string `json:"content"`
	}
	decodeBody(t, resp, &msgs)
	require.Len(t, msgs, 2)
	assert.Equal(t, "thanks for having me", msgs[0].Content)
	assert.Equal(t, "welcome aboard", msgs[1].Content)

	// Admin blocks the member: retained as member, barred from chat.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/block", adminAuth, map[string]uint{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Blocking twice is an invalid transition.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/block", adminAuth, map[string]uint{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Already restricted", errBody.Message)

	// Blocked member appears in both members and blocked.
	resp = doJSON(t, app, http.MethodGet, "/api/groups/1", adminAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &detail)
	require.Len(t, detail.Members, 2)
	require.Len(t, detail.Blocked, 1)
	assert.Equal(t, "hopeful", detail.Blocked[0].Username)
	assert.Equal(t, int64(2), detail.MessageCount)

	// Blocked member cannot chat or read even though still a member.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", memberAuth, map[string]string{
		"content": "hello again",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Contains(t, errBody.Message, "blocked")

	resp = doJSON(t, app, http.MethodGet, "/api/groups/1/messages", memberAuth, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// And cannot file a new join request.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/join", memberAuth, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Unblock restores regular membership.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/unblock", adminAuth, map[string]uint{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", memberAuth, map[string]string{
		"content": "back again",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// The admin cannot be removed.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/remove", adminAuth, map[string]uint{
		"user_id": admin.ID,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Cannot remove admin", errBody.Message)

	// Removing the member returns them to outsider.
	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/remove", adminAuth, map[string]uint{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", memberAuth, map[string]string{
		"content": "am I still in?",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeleteGroupCascades(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	_, adminAuth := createTestUser(t, s, db, "founder")

	resp := doJSON(t, app, http.MethodPost, "/api/groups", adminAuth, map[string]string{
		"name": "Short Lived",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/messages", adminAuth, map[string]string{
		"content": "only message",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/groups/1", adminAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/groups/1", adminAuth, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	var messages int64
	require.NoError(t, db.Model(&models.Message{}).Count(&messages).Error)
	assert.Zero(t, messages)
	var memberships int64
	require.NoError(t, db.Model(&models.GroupMembership{}).Count(&memberships).Error)
	assert.Zero(t, memberships)
}

func TestMyGroupsExcludesPending(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	_, adminAuth := createTestUser(t, s, db, "owner")
	_, seekerAuth := createTestUser(t, s, db, "seeker")

	resp := doJSON(t, app, http.MethodPost, "/api/groups", adminAuth, map[string]string{
		"name": "Quiet Minds",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/groups/1/join", seekerAuth, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// A pending request does not surface the group under /me.
	resp = doJSON(t, app, http.MethodGet, "/api/groups/me", seekerAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []struct {
		Name string `json:"name"`
	}
	decodeBody(t, resp, &mine)
	assert.Empty(t, mine)

	// The admin sees it.
	resp = doJSON(t, app, http.MethodGet, "/api/groups/me", adminAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Quiet Minds", mine[0].Name)
}
