// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assist

import "fmt"

// Prompt texts are fixed; the model output depends on their exact wording.

const reviewReplySystem = "You are helping a bug bounty researcher respond to program/triage team requests. " +
	"The researcher is replying to specific questions or requests from the program team. " +
	"Your job is to polish their response while keeping the EXACT same format and approach. " +
	"Only fix grammar, spelling, and clarity issues. DO NOT add extra information, change the structure, or make it more formal. " +
	"Keep the same tone and length - just make it cleaner and more professional."

const reviewReportSystem = "You are helping a bug bounty researcher improve their vulnerability report. " +
	"Focus on clarity, professionalism, and technical accuracy while maintaining all original technical details."

const generateReportSystem = "You are a cybersecurity expert helping create vulnerability reports for bug bounty programs. " +
	"Create clear, professional, and technically accurate reports that follow industry standards. " +
	"Focus on practical reproduction steps and realistic impact assessments."

func reviewReplyPrompt(reply, lastComment string) string {
	if lastComment == "" {
		return "This is my response to a program/triage team request. Please clean it up while keeping the same format and approach:\n\n" + reply
	}
	return fmt.Sprintf("This is my response to a program/triage team request. Here's what they said:\n\n\"%s\"\n\n"+
		"And here's my reply that needs cleaning up:\n\n%s\n\n"+
		"Please clean up my response while keeping the same format and approach.", lastComment, reply)
}

func autoReplyPrompt(lastComment string) string {
	return fmt.Sprintf("You are helping a bug bounty researcher respond to comments from program/triage teams. "+
		"Here's the latest comment from the program team:\n\n\"%s\"\n\n"+
		"Please generate a professional but friendly response that:\n"+
		"- Acknowledges their message appropriately\n"+
		"- Is concise and to the point\n"+
		"- Uses a conversational but respectful tone\n"+
		"- Avoids being overly formal or robotic\n"+
		"- Shows engagement and willingness to help\n"+
		"- Is appropriate for a bug bounty platform interaction\n\n"+
		"Generate only the response text, no additional formatting or explanations.", lastComment)
}

func reviewReportPrompt(description string) string {
	return "Please review and improve this bug bounty report. Make it more professional, clear, and well-structured while maintaining all technical details:\n\n" +
		description +
		"\n\nPlease improve:\n" +
		"- Grammar and spelling\n" +
		"- Technical clarity and accuracy\n" +
		"- Structure and formatting\n" +
		"- Professional tone\n" +
		"- Remove any redundancy\n\n" +
		"Keep all technical details intact and maintain the same length roughly."
}

func generateReportPrompt(targetURL, vulnType string) string {
	return fmt.Sprintf("Create a vulnerability report for a %s found on %s. \n\n"+
		"If my provided URL has parameters, make sure to include them in the report.\n\n"+
		"The report should include the following structure:\n\n"+
		"**Summary:**\n[Brief description of the vulnerability]\n\n"+
		"**Reproduction Steps:**\n1. [Step 1]\n2. [Step 2]\n3. [Continue with clear, numbered steps]\n\n"+
		"**Impact:**\n[Explain the potential impact and risk, don't overcomplicate the language and don't talk about compliance or legal implications]\n\n"+
		"**Fix Recommendations:**\n[Provide simple and clear remediation steps]\n\n"+
		"Requirements:\n"+
		"- Keep it clear and direct\n"+
		"- Don't add dates or timestamps\n"+
		"- Don't overcomplicate the language\n"+
		"- Focus on technical accuracy\n"+
		"- Make reproduction steps easy to follow\n"+
		"- Provide realistic impact assessment\n"+
		"- Give actionable fix recommendations", vulnType, targetURL)
}
