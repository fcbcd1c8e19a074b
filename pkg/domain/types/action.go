package types

// AuditAction is the fixed vocabulary of audit event action names
type AuditAction string

const (
	ActionQuery                        AuditAction = "query"
	ActionQueryPolicyUnknownRole       AuditAction = "query_policy_unknown_workspace_role"
	ActionIngestDemo                   AuditAction = "ingest_demo"
	ActionDocumentInventoryRead        AuditAction = "document_inventory_read"
	ActionDocumentClassificationUpdate AuditAction = "document_classification_update"
	ActionWorkspaceCreate              AuditAction = "workspace_create"
	ActionWorkspaceMemberAdd           AuditAction = "workspace_member_add"
	ActionWorkspaceMemberRoleUpdate    AuditAction = "workspace_member_role_update"
	ActionWorkspaceMemberRemove        AuditAction = "workspace_member_remove"
)

func (a AuditAction) String() string { return string(a) }
