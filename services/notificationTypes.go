package services

import (
	"log"

	"edudash/models"
)

// legacyTypeAliases maps deprecated category strings, still used by older
// dashboard code and stored records, to the canonical types the upstream
// accepts.
var legacyTypeAliases = map[string]models.NotificationType{
	"PAYMENT":           models.NotificationTypePayment,
	"PAYMENT_SUCCESS":   models.NotificationTypePayment,
	"ENROLLMENT":        models.NotificationTypeEnrollment,
	"COURSE_ENROLLMENT": models.NotificationTypeEnrollment,
	"COURSE_UPDATE":     models.NotificationTypeCourseUpdate,
	"COURSE_APPROVAL":   models.NotificationTypeCrsApprv,
	"CRS_APPRV":         models.NotificationTypeCrsApprv,
	"COURSE_REJECTION":  models.NotificationTypeCrsRejct,
	"ACCOUNT_STATUS":    models.NotificationTypeAccStatus,
	"WITHDRAWAL":        models.NotificationTypeWithdraw,
	"SYSTEM_ALERT":      models.NotificationTypeSysAlert,
	"SYSTEM":            models.NotificationTypeSysAlert,
	"GENERAL":           models.NotificationTypeGeneral,
}

var canonicalTypes = map[models.NotificationType]bool{
	models.NotificationTypePayment:      true,
	models.NotificationTypeEnrollment:   true,
	models.NotificationTypeCourseUpdate: true,
	models.NotificationTypeCrsApprv:     true,
	models.NotificationTypeCrsRejct:     true,
	models.NotificationTypeAccStatus:    true,
	models.NotificationTypeWithdraw:     true,
	models.NotificationTypeSysAlert:     true,
	models.NotificationTypeGeneral:      true,
}

// NormalizeNotificationType maps any type string to a canonical category.
// Canonical input is returned unchanged, known legacy aliases are translated,
// and anything else falls back to General with a logged warning. The upstream
// only accepts canonical values, so every outgoing type goes through here.
func NormalizeNotificationType(raw string) models.NotificationType {
	if canonicalTypes[models.NotificationType(raw)] {
		return models.NotificationType(raw)
	}
	if canonical, ok := legacyTypeAliases[raw]; ok {
		return canonical
	}
	log.Printf("Warning: unknown notification type %q, falling back to %s", raw, models.NotificationTypeGeneral)
	return models.NotificationTypeGeneral
}

// LegacyTypeAliases returns the known alias strings, used by the diagnostic
// fan-out to probe every legacy category
func LegacyTypeAliases() []string {
	aliases := make([]string, 0, len(legacyTypeAliases))
	for alias := range legacyTypeAliases {
		aliases = append(aliases, alias)
	}
	return aliases
}

// CanonicalTypes returns the canonical category set
func CanonicalTypes() []models.NotificationType {
	types := make([]models.NotificationType, 0, len(canonicalTypes))
	for t := range canonicalTypes {
		types = append(types, t)
	}
	return types
}
