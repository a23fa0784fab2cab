package services

import (
	"github.com/Chandanpatidar24/Project-Management/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authorization rules over loaded documents. Ownership and membership are
// checked independently: the owner keeps full rights even without a
// membership entry, and the Admin member role grants member management only.

// CanViewProject: owner or any member.
func CanViewProject(p *models.Project, callerID primitive.ObjectID) bool {
	return p.IsOwner(callerID) || p.IsMember(callerID)
}

// CanModifyProject: owner only. Admin members cannot update or delete the
// project.
func CanModifyProject(p *models.Project, callerID primitive.ObjectID) bool {
	return p.IsOwner(callerID)
}

// CanAddMembers: owner, or a member holding the Admin role.
func CanAddMembers(p *models.Project, callerID primitive.ObjectID) bool {
	return p.IsOwner(callerID) || p.MemberRoleOf(callerID) == models.RoleAdmin
}

// CanCreateTask: owner only, even for Admin members.
func CanCreateTask(p *models.Project, callerID primitive.ObjectID) bool {
	return p.IsOwner(callerID)
}

// CanUpdateTask reports whether the caller may touch the task at all, and
// whether the caller gets the full field set. The task creator (the project
// owner at creation time) may update every field; an assignee may only change
// the status.
func CanUpdateTask(t *models.Task, callerID primitive.ObjectID) (full bool, allowed bool) {
	if t.CreatedBy == callerID {
		return true, true
	}
	if t.IsAssignee(callerID) {
		return false, true
	}
	return false, false
}

// CanDeleteTask: task creator only.
func CanDeleteTask(t *models.Task, callerID primitive.ObjectID) bool {
	return t.CreatedBy == callerID
}

// CanComment: any project member or the owner.
func CanComment(p *models.Project, callerID primitive.ObjectID) bool {
	return p.IsOwner(callerID) || p.IsMember(callerID)
}
