package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/internal/storage"
	"github.com/mmynk/expenseflow/pkg/api"
	"github.com/mmynk/expenseflow/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService. Groups can own expenses, and
// their members can see and settle those expenses.
type GroupService struct {
	store storage.Store
}

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group administered by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"user_id", userID,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name is required"))
	}

	group := &models.Group{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Members:     []models.GroupMember{{UserID: userID, Role: models.GroupRoleAdmin}},
	}
	seen := map[string]bool{userID: true}
	for _, id := range req.Msg.MemberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.store.GetUserByID(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member %q does not exist", id))
			}
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		group.Members = append(group.Members, models.GroupMember{UserID: id, Role: models.GroupRoleMember})
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.memberGroup(ctx, userID, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups lists the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}
	slog.Info("ListGroups successful", "user_id", userID, "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddGroupMember adds a user to a group. Only admins may add members.
func (s *GroupService) AddGroupMember(ctx context.Context, req *connect.Request[api.AddGroupMemberRequest]) (*connect.Response[api.AddGroupMemberResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddGroupMember request received",
		"user_id", userID,
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.UserID,
	)

	group, err := s.memberGroup(ctx, userID, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if !isAdmin(group, userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("user '%s' is not an admin of group '%s'", userID, group.ID))
	}

	role := models.GroupRole(req.Msg.Role)
	switch role {
	case "":
		role = models.GroupRoleMember
	case models.GroupRoleAdmin, models.GroupRoleMember:
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown role %q", req.Msg.Role))
	}

	if err := s.store.AddGroupMember(ctx, group.ID, models.GroupMember{UserID: req.Msg.UserID, Role: role}); err != nil {
		slog.Warn("AddGroupMember failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddGroupMemberResponse{Group: toAPIGroup(updated)}), nil
}

// memberGroup loads a group, hiding it from non-members.
func (s *GroupService) memberGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !group.HasMember(userID) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group '%s' not found", groupID))
	}
	return group, nil
}

func isAdmin(g *models.Group, userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID && m.Role == models.GroupRoleAdmin {
			return true
		}
	}
	return false
}
