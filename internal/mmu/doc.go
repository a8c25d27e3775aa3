// Package mmu models the malfunction management unit's channel
// compatibility card: 120 jumpers, one per unordered channel pair, stored
// in the cabinet's MMU namespace and programmable from the 30-digit hex
// form used on real cards.
package mmu
