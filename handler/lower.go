package handler

import "fmt"

// StorageSlot is one private persistent storage cell backing a resource
// parameter. Slots are numbered by a program-wide allocator so the
// identifier is stable across the whole generation unit; the number is an
// implementation detail and never user-visible.
type StorageSlot struct {
	Index  int
	Type   string
	Init   string
	Static bool
	Guards []string
}

// CallArg is the argument expression site paired with a slot. It carries
// the same guards as its slot so disabling a resource removes both.
type CallArg struct {
	Slot   int
	Guards []string
}

// Lowering is the output of resource lowering for one declaration.
type Lowering struct {
	Slots []StorageSlot
	Args  []CallArg
}

// SlotAllocator hands out stable slot indices in lowering order.
type SlotAllocator struct {
	next int
}

func (a *SlotAllocator) alloc() int {
	i := a.next
	a.next++
	return i
}

// SlotName is the compiler-private identifier of a storage slot.
func SlotName(index int) string {
	return fmt.Sprintf("_veneerSlot%d", index)
}

// Lower transforms the resource parameters of a validated declaration
// into storage slots and call arguments. Ordering is stable and matches
// declaration order. Non-resource parameters contribute nothing here;
// their values are injected by the emitter.
func Lower(d *Declaration, alloc *SlotAllocator) Lowering {
	var low Lowering
	for _, p := range d.Params {
		if p.Role != RoleResource {
			continue
		}
		index := alloc.alloc()
		low.Slots = append(low.Slots, StorageSlot{
			Index:  index,
			Type:   p.Type.Name,
			Init:   p.Init,
			Static: p.Type.Static,
			Guards: p.Guards,
		})
		low.Args = append(low.Args, CallArg{
			Slot:   index,
			Guards: p.Guards,
		})
	}
	return low
}
