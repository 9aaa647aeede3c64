package types

import "rentledger/constants"

// Actor người thực hiện thao tác, được truyền tường minh vào mọi thao tác ghi.
// CanForceOverlap do lớp gọi cung cấp, lõi không tự xác thực.
type Actor struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	CanForceOverlap bool   `json:"canForceOverlap"`
}

// NewActor tạo Actor, quyền ép trùng lịch chỉ dành cho super admin
func NewActor(id uint, name, role string) Actor {
	return Actor{
		ID:              id,
		Name:            name,
		Role:            role,
		CanForceOverlap: role == constants.RoleSuperAdmin,
	}
}

func (a Actor) DisplayName() string {
	if a.Name == "" {
		return "system"
	}
	return a.Name
}
