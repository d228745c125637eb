/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package reason defines an optional, structured refinement of a failure kind.
//
// Where a kind answers "what failed?" (io, malformed_line, task_join, ...),
// a reason answers "where, or in which sub-case?", e.g.:
//
//   - "fs.input.not_found"
//   - "record.field.reg_num"
//   - "task.join.cancelled"
//
// The zero value ("") is allowed and means no refinement is provided.
// Reasons never change how an error renders; they drive transport and
// exit-code mapping and make logs greppable.
package reason
