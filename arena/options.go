package arena

import (
	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

// Options configures an Arena beyond its capacity. The zero value selects
// page-size commit granularity and the operating system's mapper.
type Options struct {
	// Granularity is the commit step: how much extra gets committed each
	// time the cursor crosses the watermark. Larger steps trade resident
	// memory for fewer syscalls on commit-heavy workloads. Zero means
	// the page size. Must be a power-of-two multiple of the page size.
	Granularity mem.Size

	// Mapper supplies the virtual-memory implementation. Nil means
	// vmem.System(). Tests and tooling substitute instrumented mappers
	// here.
	Mapper vmem.Mapper
}

func (o Options) granularity() mem.Size {
	if o.Granularity == 0 {
		return vmem.PageSize()
	}
	g := o.Granularity
	if !mem.Alignment(g).IsValid() || g < vmem.PageSize() {
		panic("arena: granularity must be a power-of-two multiple of the page size")
	}
	return g
}

func (o Options) mapper() vmem.Mapper {
	if o.Mapper == nil {
		return vmem.System()
	}
	return o.Mapper
}
