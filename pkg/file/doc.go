// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package file reads line-oriented text files.
//
// The Parser reads from the local filesystem or from any fs.FS (the MIB
// builder passes the embedded MIB bundle), drops blank and comment lines, and
// either returns the remaining lines or splits them into a key/value map.
//
// # Usage
//
// Read MIB source lines, skipping ASN.1 comments:
//
//	p := file.NewParser(file.WithFS(mibs), file.WithCommentPrefix("--"))
//	lines, err := p.GetLines("xups.mib")
//
// Read a recorded walk (one "oid:value" pair per line):
//
//	p := file.NewParser(file.WithKVDelimiter(":"))
//	values, err := p.GetMap("testdata/xups_output.txt")
package file
