// Package handler implements the declaration-to-trampoline transform for
// bare-metal programs: a fixed catalog of handler kinds and their calling
// contracts, a parser from annotated function descriptions to structured
// declarations, a contract validator, resource lowering to private
// storage slots, and a Go-source trampoline emitter bound to the hardware
// vector symbols.
//
// Declarations are plain functions annotated with veneer pragmas:
//
//	//veneer:entry
//	//veneer:init ticks 0
//	func run(ticks *int) { ... }
//
//	//veneer:exception SysTick
//	//veneer:init count uint32(0)
//	func tick(count *uint32) { ... }
//
//	//veneer:exception HardFault unsafe
//	//veneer:frame frame
//	//veneer:noreturn
//	func fault(frame *cortexm.ExceptionFrame) { ... }
//
//	//veneer:interrupt atsamd21.Interrupt.TC3
//	func tc3() { ... }
//
// Function pragmas: entry, pre_init unsafe, exception <Name> [unsafe],
// interrupt <Enum.Member>, noreturn, build <tags>. Parameter pragmas name
// the parameter they apply to: init <param> <expr>, irqn <param>,
// frame <param>, cfg <param> <tags>, static <param>.
//
// The package consumes the pre-split Fn/Pragma description supplied by
// the builder and never reads source itself, so a front end for another
// surface syntax only has to produce the same description.
package handler
