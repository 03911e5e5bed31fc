/*
Package evm implements a 256-bit stack based bytecode interpreter modeled on
the Ethereum Virtual Machine.

The interpreter loops over the code of a call frame and dispatches every
opcode through a jump table. Each frame owns its stack, memory and storage;
nested CALLs run a fresh frame and hand back only return data and logs.
Execution is not gas metered: the GAS opcode reports the largest word.
*/
package evm
