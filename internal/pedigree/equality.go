package pedigree

// Same decide si dos referencias denotan el mismo caballo, solo por id.
// Dos nil son iguales; uno nil y otro no, distintos. Sin id la identidad es desconocida.
func Same(a, b *Horse) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ID == nil || b.ID == nil {
		return false
	}
	return *a.ID == *b.ID
}

// SameRef aplica la misma regla a referencias de padre (Absent equivale a nil).
func SameRef(a, b ParentRef) bool {
	if a.Kind() == RefAbsent || b.Kind() == RefAbsent {
		return a.Kind() == b.Kind()
	}
	ida, oka := a.ID()
	idb, okb := b.ID()
	return oka && okb && ida == idb
}

func containsHorse(list []Horse, h *Horse) bool {
	for i := range list {
		if Same(&list[i], h) {
			return true
		}
	}
	return false
}
